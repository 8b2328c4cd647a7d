package stock

import (
	"fmt"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/robshop/stock-engine/internal/domain"
	"github.com/robshop/stock-engine/internal/domain/entity"
	"github.com/robshop/stock-engine/internal/domain/repository"
)

// BrandIndex groups catalog rows brand -> product -> sorted variant list,
// the shape the pickers and reports consume.
type BrandIndex struct {
	Brands []BrandGroup `json:"brands"`
}

// BrandGroup is one brand with its products.
type BrandGroup struct {
	Brand    string         `json:"brand"`
	Products []ProductGroup `json:"products"`
}

// ProductGroup is one product with its variants, locale-sorted.
type ProductGroup struct {
	ProductName string   `json:"product_name"`
	Variants    []string `json:"variants"`
}

// CatalogIndex is the read-side projection over the master catalog. It never
// consults overrides: pickers offer what the catalog defines, the resolver
// decides what is effective.
type CatalogIndex struct {
	catalog  repository.CatalogRepository
	collator *collate.Collator
}

// NewCatalogIndex builds the projection. locale is a BCP 47 tag for the
// deployment's primary language; unknown tags fall back to und.
func NewCatalogIndex(catalog repository.CatalogRepository, locale string) *CatalogIndex {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Und
	}
	return &CatalogIndex{
		catalog:  catalog,
		collator: collate.New(tag, collate.IgnoreCase),
	}
}

// GetCatalog returns the catalog rows for a location+category as caller-safe
// copies. Unknown location/category yields an empty list.
func (ci *CatalogIndex) GetCatalog(location string, category entity.Category) ([]*entity.StockRecord, error) {
	if !category.Valid() {
		return nil, domain.ErrUnknownCategory
	}
	rows, err := ci.catalog.List(location, category)
	if err != nil {
		return nil, fmt.Errorf("list catalog: %w", err)
	}
	for _, row := range rows {
		row.Origin = entity.OriginCatalog
	}
	return rows, nil
}

// IndexByBrand groups the catalog into brand -> product -> variants, all
// three levels sorted with the locale-aware collator.
func (ci *CatalogIndex) IndexByBrand(location string, category entity.Category) (*BrandIndex, error) {
	rows, err := ci.GetCatalog(location, category)
	if err != nil {
		return nil, err
	}

	byBrand := make(map[string]map[string][]string)
	for _, row := range rows {
		products, ok := byBrand[row.Brand]
		if !ok {
			products = make(map[string][]string)
			byBrand[row.Brand] = products
		}
		if row.Variant != "" && !contains(products[row.ProductName], row.Variant) {
			products[row.ProductName] = append(products[row.ProductName], row.Variant)
		} else if _, ok := products[row.ProductName]; !ok {
			products[row.ProductName] = nil
		}
	}

	index := &BrandIndex{}
	for brand, products := range byBrand {
		group := BrandGroup{Brand: brand}
		for name, variants := range products {
			ci.collator.SortStrings(variants)
			group.Products = append(group.Products, ProductGroup{ProductName: name, Variants: variants})
		}
		sort.Slice(group.Products, func(i, j int) bool {
			return ci.collator.CompareString(group.Products[i].ProductName, group.Products[j].ProductName) < 0
		})
		index.Brands = append(index.Brands, group)
	}
	sort.Slice(index.Brands, func(i, j int) bool {
		return ci.collator.CompareString(index.Brands[i].Brand, index.Brands[j].Brand) < 0
	})

	return index, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
