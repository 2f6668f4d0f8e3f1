package gateway

import (
	"context"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Description  string `json:"description,omitempty"`
	Image        string `json:"image,omitempty"`
	IsActive     bool   `json:"is_active"`
	ProductCount int    `json:"product_count"`
}

// ProductSummary is the list-view shape; ProductPage carries the full detail
// record with its image gallery and variant axes.
type ProductSummary struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Slug         string          `json:"slug"`
	Price        decimal.Decimal `json:"price"`
	Image        string          `json:"image,omitempty"`
	IsFeatured   bool            `json:"is_featured"`
	CategoryName string          `json:"category_name,omitempty"`
	CategorySlug string          `json:"category_slug,omitempty"`
	InStock      bool            `json:"in_stock"`
}

type ProductImage struct {
	ID        int64  `json:"id"`
	Image     string `json:"image"`
	AltText   string `json:"alt_text,omitempty"`
	IsPrimary bool   `json:"is_primary"`
	Order     int    `json:"order"`
}

type ProductColor struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	HexCode     string `json:"hex_code,omitempty"`
	IsAvailable bool   `json:"is_available"`
}

type ProductSize struct {
	ID          int64  `json:"id"`
	Size        string `json:"size"`
	IsAvailable bool   `json:"is_available"`
}

type ProductPage struct {
	ID            int64           `json:"id"`
	Category      *Category       `json:"category,omitempty"`
	Name          string          `json:"name"`
	Slug          string          `json:"slug"`
	Description   string          `json:"description,omitempty"`
	Price         decimal.Decimal `json:"price"`
	Image         string          `json:"image,omitempty"`
	IsActive      bool            `json:"is_active"`
	IsFeatured    bool            `json:"is_featured"`
	StockQuantity int             `json:"stock_quantity"`
	SKU           string          `json:"sku,omitempty"`
	InStock       bool            `json:"in_stock"`
	Images        []ProductImage  `json:"images,omitempty"`
	Colors        []ProductColor  `json:"colors,omitempty"`
	Sizes         []ProductSize   `json:"sizes,omitempty"`
}

type ProductFilter struct {
	CategorySlug string
	Featured     *bool
	Search       string
}

func (f ProductFilter) query() url.Values {
	q := url.Values{}
	if f.CategorySlug != "" {
		q.Set("category__slug", f.CategorySlug)
	}
	if f.Featured != nil {
		q.Set("is_featured", strconv.FormatBool(*f.Featured))
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	return q
}

func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := c.get(ctx, "/store/categories/", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) Category(ctx context.Context, slug string) (*Category, error) {
	var category Category
	if err := c.get(ctx, "/store/categories/"+url.PathEscape(slug)+"/", nil, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *Client) Products(ctx context.Context, filter ProductFilter) ([]ProductSummary, error) {
	var products []ProductSummary
	if err := c.get(ctx, "/store/products/", filter.query(), &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) Product(ctx context.Context, slug string) (*ProductPage, error) {
	var product ProductPage
	if err := c.get(ctx, "/store/products/"+url.PathEscape(slug)+"/", nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) FeaturedProducts(ctx context.Context) ([]ProductSummary, error) {
	var products []ProductSummary
	if err := c.get(ctx, "/store/products/featured/", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}
