package catalog

import (
	"strings"

	"github.com/pricelens/backend/internal/domain"
)

// wireProduct is the loose document shape the catalog store returns. Scraped
// records are heterogeneous; every field beyond the id may be absent.
type wireProduct struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Color       string   `json:"color"`
	Category    string   `json:"category"`
	ProductType string   `json:"productType"`
	Colors      []string `json:"colors"`
	URL         string   `json:"url"`

	Materials *struct {
		Fabric string `json:"fabric"`
	} `json:"materials"`

	Price *struct {
		Original   float64 `json:"original"`
		Discounted float64 `json:"discounted"`
		Currency   string  `json:"currency"`
	} `json:"price"`

	Store *struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	} `json:"store"`

	AnalyzedDescription *struct {
		Genre   string   `json:"genre"`
		Length  string   `json:"length"`
		Type    string   `json:"type"`
		Pattern string   `json:"pattern"`
		Graphic string   `json:"graphic"`
		Fabrics []string `json:"fabrics"`
		Color   string   `json:"color"`
	} `json:"analyzed description"`
}

// MapProducts converts wire documents of one collection to domain records.
// Documents without an id are dropped; everything else maps through with
// absence preserved, never defaulted.
func MapProducts(collection string, wire []wireProduct) []domain.ProductRecord {
	products := make([]domain.ProductRecord, 0, len(wire))
	for _, w := range wire {
		if strings.TrimSpace(w.ID) == "" {
			continue
		}
		products = append(products, mapProduct(collection, w))
	}
	return products
}

func mapProduct(collection string, w wireProduct) domain.ProductRecord {
	record := domain.ProductRecord{
		ID:          w.ID,
		Name:        w.Name,
		Description: w.Description,
		Color:       w.Color,
		Category:    w.Category,
		ProductType: w.ProductType,
		Colors:      w.Colors,
		URL:         w.URL,
		Collection:  collection,
	}

	if w.Materials != nil {
		record.Materials = domain.Materials{Fabric: w.Materials.Fabric}
	}

	if w.Price != nil {
		record.Price = &domain.Price{
			Original:   w.Price.Original,
			Discounted: w.Price.Discounted,
			Currency:   w.Price.Currency,
		}
	}

	if w.Store != nil {
		record.Store = domain.Store{Name: w.Store.Name, URL: w.Store.URL}
	}

	if w.AnalyzedDescription != nil {
		record.AnalyzedDescription = &domain.AnalyzedDescription{
			Genre:   w.AnalyzedDescription.Genre,
			Length:  w.AnalyzedDescription.Length,
			Type:    w.AnalyzedDescription.Type,
			Pattern: w.AnalyzedDescription.Pattern,
			Graphic: w.AnalyzedDescription.Graphic,
			Fabrics: w.AnalyzedDescription.Fabrics,
			Color:   w.AnalyzedDescription.Color,
		}
	}

	return record
}
