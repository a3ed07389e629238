package evaluate

import (
	"context"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/recmall/core"
	"github.com/rushteam/recmall/recommend"
)

// SkipReason 用户被排除在均值之外的原因。
type SkipReason uint8

const (
	// SkipNone 正常评估。
	SkipNone SkipReason = iota
	// SkipNoRelevant 测试集里没有该用户的相关商品。
	SkipNoRelevant
	// SkipRecommendFailed 推荐调用出错。
	SkipRecommendFailed
	// SkipEmptyRecommendation 推荐结果为空。
	SkipEmptyRecommendation
)

func (r SkipReason) String() string {
	switch r {
	case SkipNone:
		return "none"
	case SkipNoRelevant:
		return "no_relevant"
	case SkipRecommendFailed:
		return "recommend_failed"
	case SkipEmptyRecommendation:
		return "empty_recommendation"
	default:
		return "unknown"
	}
}

// UserResult 单个用户的评估结果。Skip 非零时 Metrics 为空。
type UserResult struct {
	UserID  string
	Metrics map[int]Metrics
	Skip    SkipReason
	Err     error
}

// Row 报表中的一行：某方法在某 K 下的平均指标。
type Row struct {
	Method    core.Method
	K         int
	Precision float64
	Recall    float64
	F1        float64
	NDCG      float64
}

// Report 一次评估的完整结果。Rows 按 K 升序，可直接渲染成表格。
type Report struct {
	Method  core.Method
	Rows    []Row
	Users   []UserResult
	Skipped map[SkipReason]int
}

// EvaluatedUsers 进入均值的用户数。
func (r *Report) EvaluatedUsers() int {
	n := 0
	for _, u := range r.Users {
		if u.Skip == SkipNone {
			n++
		}
	}
	return n
}

// Evaluator 对已训练模型做离线评估。模型只读，可安全并发。
type Evaluator struct {
	// Model 待评估的模型，必填。
	Model *recommend.Model

	// Workers 并发评估的用户数，<=0 时取 GOMAXPROCS。
	Workers int
}

// Evaluate 用测试集交互评估单个方法。
// 每个用户的相关集合是其测试集商品去重后的全集；
// 单个用户的推荐失败只跳过该用户，不中断整体评估。
func (e *Evaluator) Evaluate(ctx context.Context, test []core.Interaction, ks []int, method core.Method) (*Report, error) {
	if e.Model == nil {
		return nil, recommend.ErrNotReady
	}
	if !method.Valid() {
		return nil, core.NewDomainError(core.ModuleEvaluate, core.ErrorCodeInvalidInput, "unknown method")
	}
	if len(ks) == 0 {
		return nil, core.NewDomainError(core.ModuleEvaluate, core.ErrorCodeInvalidInput, "no cutoff values")
	}

	sorted := append([]int(nil), ks...)
	sort.Ints(sorted)
	maxK := sorted[len(sorted)-1]

	users, relevant := relevantByUser(test)
	results := make([]UserResult, len(users))

	workers := e.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, u := range users {
		i, u := i, u
		g.Go(func() error {
			results[i] = e.evaluateUser(gctx, u, relevant[u], sorted, maxK, method)
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{
		Method:  method,
		Users:   results,
		Skipped: make(map[SkipReason]int),
	}
	evaluated := 0
	sums := make(map[int]*Metrics, len(sorted))
	for _, k := range sorted {
		sums[k] = &Metrics{}
	}
	for _, r := range results {
		if r.Skip != SkipNone {
			report.Skipped[r.Skip]++
			continue
		}
		evaluated++
		for _, k := range sorted {
			m := r.Metrics[k]
			sums[k].Precision += m.Precision
			sums[k].Recall += m.Recall
			sums[k].F1 += m.F1
			sums[k].NDCG += m.NDCG
		}
	}
	for _, k := range sorted {
		row := Row{Method: method, K: k}
		if evaluated > 0 {
			row.Precision = sums[k].Precision / float64(evaluated)
			row.Recall = sums[k].Recall / float64(evaluated)
			row.F1 = sums[k].F1 / float64(evaluated)
			row.NDCG = sums[k].NDCG / float64(evaluated)
		}
		report.Rows = append(report.Rows, row)
	}
	return report, nil
}

func (e *Evaluator) evaluateUser(ctx context.Context, userID string, relevant []string, ks []int, maxK int, method core.Method) UserResult {
	r := UserResult{UserID: userID}
	if len(relevant) == 0 {
		r.Skip = SkipNoRelevant
		return r
	}
	recs, err := e.Model.Recommend(ctx, userID, maxK, method)
	if err != nil {
		r.Skip = SkipRecommendFailed
		r.Err = err
		return r
	}
	if len(recs) == 0 {
		r.Skip = SkipEmptyRecommendation
		return r
	}
	r.Metrics = make(map[int]Metrics, len(ks))
	for _, k := range ks {
		r.Metrics[k] = MetricsAt(recs, relevant, k)
	}
	return r
}

// CompareMethods 在固定 K 下评估全部四种方法，每种方法一行，
// 顺序与 core.Methods 一致。某方法整体失败时中断并返回错误。
func (e *Evaluator) CompareMethods(ctx context.Context, test []core.Interaction, k int) ([]Row, error) {
	rows := make([]Row, 0, len(core.Methods()))
	for _, method := range core.Methods() {
		report, err := e.Evaluate(ctx, test, []int{k}, method)
		if err != nil {
			return nil, err
		}
		rows = append(rows, report.Rows[0])
	}
	return rows, nil
}

// Coverage 目录覆盖率：抽样用户各取 Top-N 推荐，
// 去重后的商品数占目录总数的比例。目录为空返回 0。
func (e *Evaluator) Coverage(ctx context.Context, users []string, n int, method core.Method) (float64, error) {
	if e.Model == nil {
		return 0, recommend.ErrNotReady
	}
	total := e.Model.Catalog.Len()
	if total == 0 {
		return 0, nil
	}
	seen := make(map[string]bool)
	for _, u := range users {
		recs, err := e.Model.Recommend(ctx, u, n, method)
		if err != nil {
			return 0, err
		}
		for _, id := range recs {
			seen[id] = true
		}
	}
	return float64(len(seen)) / float64(total), nil
}

// relevantByUser 测试集按用户分组，商品去重，用户按字典序排列，
// 保证评估遍历顺序稳定。
func relevantByUser(test []core.Interaction) ([]string, map[string][]string) {
	relevant := make(map[string][]string)
	seen := make(map[string]map[string]bool)
	for _, in := range test {
		if seen[in.UserID] == nil {
			seen[in.UserID] = make(map[string]bool)
		}
		if seen[in.UserID][in.ProductID] {
			continue
		}
		seen[in.UserID][in.ProductID] = true
		relevant[in.UserID] = append(relevant[in.UserID], in.ProductID)
	}
	users := make([]string, 0, len(relevant))
	for u := range relevant {
		users = append(users, u)
	}
	sort.Strings(users)
	return users, relevant
}
