package catalogue

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/KaciL4/Shop-Website/internal/config"
)

// Sources 三个相互独立的目录数据源：商品、分类、评价
// 引用既可以是本地文件路径，也可以是 http(s) 地址
type Sources struct {
	Products   string
	Categories string
	Reviews    string
}

// SourcesFromConfig 从配置构造数据源
func SourcesFromConfig(cfg *config.CatalogueConfig) Sources {
	return Sources{
		Products:   cfg.ProductsSource,
		Categories: cfg.CategoriesSource,
		Reviews:    cfg.ReviewsSource,
	}
}

// rawProduct 商品原始数据（products.json 的行结构）
type rawProduct struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	SKU         string  `json:"sku"`
	Stock       int     `json:"stock"`
}

// rawCategories 分类原始数据（categories.xml）
type rawCategories struct {
	XMLName    xml.Name      `xml:"categories"`
	Categories []rawCategory `xml:"category"`
}

type rawCategory struct {
	Name        string `xml:"name"`
	Description string `xml:"description"`
}

// rawProductReviews 评价原始数据（reviews.json，按商品分组）
type rawProductReviews struct {
	ProductID int64       `json:"product_id"`
	Reviews   []rawReview `json:"reviews"`
}

type rawReview struct {
	ReviewID int64  `json:"review_id"`
	User     string `json:"user"`
	Rating   int    `json:"rating"`
	Title    string `json:"title"`
	Comment  string `json:"comment"`
}

var httpClient = &http.Client{Timeout: 30 * time.Second}

// fetch 拉取单个数据源的原始字节
func fetch(ctx context.Context, ref string) ([]byte, error) {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
		if err != nil {
			return nil, err
		}
		resp, err := httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("fetch %s: unexpected status %d", ref, resp.StatusCode)
		}
		return io.ReadAll(resp.Body)
	}
	return os.ReadFile(ref)
}

func fetchProducts(ctx context.Context, ref string) ([]rawProduct, error) {
	body, err := fetch(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("load products: %v", err)
	}
	var list []rawProduct
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("parse products: %v", err)
	}
	return list, nil
}

func fetchCategories(ctx context.Context, ref string) ([]rawCategory, error) {
	body, err := fetch(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("load categories: %v", err)
	}
	var doc rawCategories
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("parse categories: %v", err)
	}
	return doc.Categories, nil
}

func fetchReviews(ctx context.Context, ref string) ([]rawProductReviews, error) {
	body, err := fetch(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("load reviews: %v", err)
	}
	var list []rawProductReviews
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("parse reviews: %v", err)
	}
	return list, nil
}
