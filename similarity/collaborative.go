package similarity

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/recmall/matrix"
)

// ItemCollaborative 构建 Item-CF 相似度矩阵：
// 向量是用户-物品矩阵的列（所有用户对这个商品的权重）。
//
// "被同一批用户喜欢的物品，相互相似"——工业召回的常青树。
func ItemCollaborative(ctx context.Context, m *matrix.UserItem) (*Matrix, error) {
	vectors := make([][]float64, m.NumItems())
	for i, id := range m.Items {
		col, _ := m.ItemColumn(id)
		vectors[i] = col
	}
	return pairwise(ctx, m.Items, vectors)
}

// UserCollaborative 构建 User-CF 相似度矩阵：
// 向量是用户-物品矩阵的行（一个用户在全部商品上的权重）。
func UserCollaborative(ctx context.Context, m *matrix.UserItem) (*Matrix, error) {
	vectors := make([][]float64, m.NumUsers())
	for u, id := range m.Users {
		row, _ := m.UserRow(id)
		vectors[u] = row
	}
	return pairwise(ctx, m.Users, vectors)
}

// pairwise 对每对向量计算余弦相似度，只算上三角再镜像。
// 行级并行纯粹是性能优化，结果与串行完全一致。
func pairwise(ctx context.Context, ids []string, vectors [][]float64) (*Matrix, error) {
	sim := NewMatrix(ids)
	if len(ids) == 0 {
		return sim, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range ids {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for j := i + 1; j < len(ids); j++ {
				s := Cosine(vectors[i], vectors[j])
				sim.Data[i][j] = s
				sim.Data[j][i] = s
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sim, nil
}
