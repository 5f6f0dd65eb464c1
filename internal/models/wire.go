package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// LoyaltyRecord is one entry of the loyalty input file. Field names follow the
// upstream export (snake_case French keys); decoding is tolerant about numeric
// fields arriving as strings, which the export produces for older snapshots.
type LoyaltyRecord struct {
	ClientID         string
	Name             string
	Email            string
	Gender           string
	Age              float64
	RegisteredAt     string
	LastPurchaseAt   string
	PurchaseCount    float64
	CurrentPoints    float64
	TotalPoints      float64
	UsedPoints       float64
	Status           string
	Active           bool
}

// UnmarshalJSON decodes a loyalty record from its wire form.
func (r *LoyaltyRecord) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.ClientID = stringField(raw, "client_id", "Client_ID")
	r.Name = stringField(raw, "nom")
	r.Email = stringField(raw, "email")
	r.Gender = stringField(raw, "sexe")
	r.Age = numberField(raw, "age")
	r.RegisteredAt = stringField(raw, "date_inscription")
	r.LastPurchaseAt = stringField(raw, "dernier_achat")
	r.PurchaseCount = numberField(raw, "nombre_achats")
	r.CurrentPoints = numberField(raw, "points_actuels")
	r.TotalPoints = numberField(raw, "points_cumules")
	r.UsedPoints = numberField(raw, "points_utilises")
	r.Status = stringField(raw, "statut")
	r.Active = boolField(raw, "est_actif")
	return nil
}

// Validate checks the structural invariants of a loyalty record.
func (r *LoyaltyRecord) Validate() error {
	if strings.TrimSpace(r.ClientID) == "" {
		return errMissingClientID
	}
	return nil
}

// PurchaseRecord is one entry of the purchases input file. The export uses
// display-oriented keys ("Total_Achat (€)") with historical variants, so the
// record decodes itself instead of relying on struct tags.
type PurchaseRecord struct {
	ClientID  string
	Age       float64
	Gender    string
	Total     float64
	ItemCount float64
	Date      string
	Products  []ProductItem
}

// ProductItem is a single line item inside a purchase.
type ProductItem struct {
	Category string
	Name     string
	Cost     float64
}

// UnmarshalJSON decodes a purchase record from its wire form, accepting the
// key variants the export has used over time.
func (r *PurchaseRecord) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.ClientID = stringField(raw, "Client_ID", "client_id")
	r.Age = numberField(raw, "Âge", "Age")
	r.Gender = stringField(raw, "Sexe")
	r.Total = numberField(raw, "Total_Achat (€)", "Total_Achat", "Montant_Total")
	r.ItemCount = numberField(raw, "Nombre_Produits")
	r.Date = stringField(raw, "Date_Achat", "Jour_Achat")

	items, ok := raw["Produits"].([]interface{})
	if !ok {
		return nil
	}
	r.Products = make([]ProductItem, 0, len(items))
	for _, it := range items {
		m, ok := it.(map[string]interface{})
		if !ok {
			continue
		}
		r.Products = append(r.Products, ProductItem{
			Category: stringField(m, "Catégorie", "Categorie"),
			Name:     stringField(m, "Nom_Produit"),
			Cost:     numberField(m, "Total_Coût_Produit (€)", "Total_Coût_Produit", "Coût"),
		})
	}
	return nil
}

// stringField returns the first present key rendered as a string.
func stringField(m map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		v, ok := m[k]
		if !ok || v == nil {
			continue
		}
		switch s := v.(type) {
		case string:
			return s
		case float64:
			return strconv.FormatFloat(s, 'f', -1, 64)
		}
	}
	return ""
}

// numberField returns the first present key rendered as a float64. String
// values holding numbers are accepted; anything else counts as missing and
// defaults to 0.
func numberField(m map[string]interface{}, keys ...string) float64 {
	for _, k := range keys {
		v, ok := m[k]
		if !ok || v == nil {
			continue
		}
		switch n := v.(type) {
		case float64:
			return n
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
				return f
			}
		}
	}
	return 0
}

func boolField(m map[string]interface{}, keys ...string) bool {
	for _, k := range keys {
		if b, ok := m[k].(bool); ok {
			return b
		}
	}
	return false
}
