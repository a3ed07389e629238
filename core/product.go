package core

// Product 是商品目录中的一行。加载后不可变，引擎在模型的生命周期内持有它。
type Product struct {
	ID          string  `json:"product_id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	SubCategory string  `json:"sub_category"`
	Brand       string  `json:"brand"`
	Price       float64 `json:"price"`
	Rating      float64 `json:"rating"` // [0, 5]
	NumReviews  int     `json:"num_reviews"`
	Description string  `json:"description"`
}

// Catalog 是不可变的商品目录：按加载顺序保存商品，并提供按 ID 的快速查找。
// 内容相似度引擎覆盖整个 Catalog（而非只有交互过的商品），
// 所以零交互商品只能通过内容召回或热门兜底触达。
type Catalog struct {
	products []Product
	index    map[string]int // product_id -> products 下标
}

// NewCatalog 从商品列表构建目录。重复的 product_id 保留第一次出现的行。
func NewCatalog(products []Product) *Catalog {
	c := &Catalog{
		products: make([]Product, 0, len(products)),
		index:    make(map[string]int, len(products)),
	}
	for _, p := range products {
		if _, ok := c.index[p.ID]; ok {
			continue
		}
		c.index[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}
	return c
}

// Len 返回商品数。
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.products)
}

// Get 按 ID 查找商品。
func (c *Catalog) Get(id string) (Product, bool) {
	if c == nil {
		return Product{}, false
	}
	i, ok := c.index[id]
	if !ok {
		return Product{}, false
	}
	return c.products[i], true
}

// Has 判断商品是否在目录中。
func (c *Catalog) Has(id string) bool {
	if c == nil {
		return false
	}
	_, ok := c.index[id]
	return ok
}

// IDs 返回全部商品 ID，顺序与加载顺序一致。
// 这个顺序是各推荐方法平分时的决胜依据，必须稳定。
func (c *Catalog) IDs() []string {
	if c == nil {
		return nil
	}
	ids := make([]string, len(c.products))
	for i, p := range c.products {
		ids[i] = p.ID
	}
	return ids
}

// Products 返回目录中全部商品的副本，顺序与加载顺序一致。
func (c *Catalog) Products() []Product {
	if c == nil {
		return nil
	}
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Lookup 返回与给定 ID 匹配的商品行，不保证顺序；未知 ID 被跳过。
func (c *Catalog) Lookup(ids []string) []Product {
	if c == nil {
		return nil
	}
	out := make([]Product, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if i, ok := c.index[id]; ok {
			out = append(out, c.products[i])
		}
	}
	return out
}

// TotalPrice 返回给定商品 ID 的价格之和，未知 ID 计 0。
// 供上层做购物车/心愿单/浏览集合的金额统计。
func (c *Catalog) TotalPrice(ids []string) float64 {
	var total float64
	for _, id := range ids {
		if p, ok := c.Get(id); ok {
			total += p.Price
		}
	}
	return total
}
