// Package dataset 负责把 CSV 格式的商品目录和交互日志读入内存。
// 两份文件都带表头，按列名取值，列顺序无关。
// 任何一行解析失败都直接报错，不做静默跳过。
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rushteam/recmall/core"
)

// 交互日志的时间戳兼容这几种写法，按序尝试。
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// LoadProducts 从 CSV 文件读取商品目录。
//
// 必需列：product_id, name, category, sub_category, brand,
// price, rating, num_reviews；description 可选。
func LoadProducts(path string) ([]core.Product, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open products: %w", err)
	}
	defer f.Close()
	return ReadProducts(f)
}

// ReadProducts 从任意 reader 读取商品目录，语义同 LoadProducts。
func ReadProducts(r io.Reader) ([]core.Product, error) {
	rows, header, err := readAll(r)
	if err != nil {
		return nil, err
	}
	required := []string{"product_id", "name", "category", "sub_category", "brand", "price", "rating", "num_reviews"}
	if err := checkColumns(header, required); err != nil {
		return nil, err
	}

	products := make([]core.Product, 0, len(rows))
	for i, row := range rows {
		line := i + 2 // 含表头的行号，方便排查
		price, err := parseFloat(row["price"])
		if err != nil {
			return nil, badRow(line, "price", err)
		}
		rating, err := parseFloat(row["rating"])
		if err != nil {
			return nil, badRow(line, "rating", err)
		}
		numReviews, err := strconv.Atoi(strings.TrimSpace(row["num_reviews"]))
		if err != nil {
			return nil, badRow(line, "num_reviews", err)
		}
		p := core.Product{
			ID:          strings.TrimSpace(row["product_id"]),
			Name:        row["name"],
			Category:    row["category"],
			SubCategory: row["sub_category"],
			Brand:       row["brand"],
			Price:       price,
			Rating:      rating,
			NumReviews:  numReviews,
			Description: row["description"],
		}
		if p.ID == "" {
			return nil, core.NewDomainError(core.ModuleDataset, core.ErrorCodeInvalidInput,
				fmt.Sprintf("dataset: line %d: empty product_id", line))
		}
		products = append(products, p)
	}
	return products, nil
}

// LoadInteractions 从 CSV 文件读取交互日志。
//
// 必需列：user_id, product_id, event, timestamp；
// interaction_strength 可选，缺省或留空时用事件的基础权重。
func LoadInteractions(path string) ([]core.Interaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open interactions: %w", err)
	}
	defer f.Close()
	return ReadInteractions(f)
}

// ReadInteractions 从任意 reader 读取交互日志，语义同 LoadInteractions。
func ReadInteractions(r io.Reader) ([]core.Interaction, error) {
	rows, header, err := readAll(r)
	if err != nil {
		return nil, err
	}
	required := []string{"user_id", "product_id", "event", "timestamp"}
	if err := checkColumns(header, required); err != nil {
		return nil, err
	}

	interactions := make([]core.Interaction, 0, len(rows))
	for i, row := range rows {
		line := i + 2
		event, err := core.ParseEventKind(strings.TrimSpace(row["event"]))
		if err != nil {
			return nil, badRow(line, "event", err)
		}
		ts, err := parseTimestamp(row["timestamp"])
		if err != nil {
			return nil, badRow(line, "timestamp", err)
		}
		in := core.Interaction{
			UserID:    strings.TrimSpace(row["user_id"]),
			ProductID: strings.TrimSpace(row["product_id"]),
			Event:     event,
			Strength:  event.Strength(),
			Timestamp: ts,
		}
		if raw := strings.TrimSpace(row["interaction_strength"]); raw != "" {
			strength, err := strconv.Atoi(raw)
			if err != nil {
				return nil, badRow(line, "interaction_strength", err)
			}
			in.Strength = strength
		}
		if in.UserID == "" || in.ProductID == "" {
			return nil, core.NewDomainError(core.ModuleDataset, core.ErrorCodeInvalidInput,
				fmt.Sprintf("dataset: line %d: empty user_id or product_id", line))
		}
		interactions = append(interactions, in)
	}
	return interactions, nil
}

// readAll 读整个 CSV，首行作表头，其余行转成列名到值的映射。
func readAll(r io.Reader) ([]map[string]string, []string, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil, core.NewDomainError(core.ModuleDataset, core.ErrorCodeInvalidInput,
			"dataset: empty file")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("dataset: read header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []map[string]string
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("dataset: read row: %w", err)
		}
		row := make(map[string]string, len(header))
		for i, col := range header {
			row[col] = record[i]
		}
		rows = append(rows, row)
	}
	return rows, header, nil
}

func checkColumns(header, required []string) error {
	have := make(map[string]bool, len(header))
	for _, col := range header {
		have[col] = true
	}
	for _, col := range required {
		if !have[col] {
			return core.NewDomainError(core.ModuleDataset, core.ErrorCodeInvalidInput,
				fmt.Sprintf("dataset: missing column %q", col))
		}
	}
	return nil
}

// badRow 把某一列的解析错误包装成带行号的领域错误。
func badRow(line int, column string, err error) error {
	return core.NewDomainError(core.ModuleDataset, core.ErrorCodeInvalidInput,
		fmt.Sprintf("dataset: line %d: bad %s: %v", line, column, err))
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	// 整数按 Unix 秒解释
	if sec, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(sec, 0).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
