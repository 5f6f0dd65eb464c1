package models

import (
	"encoding/json"
	"testing"
)

func TestLoyaltyRecordUnmarshal(t *testing.T) {
	payload := `{
		"client_id": "C001",
		"nom": "Marie Dupont",
		"email": "marie@example.com",
		"sexe": "Femme",
		"age": 34,
		"date_inscription": "2022-03-15",
		"dernier_achat": "2024-01-10",
		"nombre_achats": 12,
		"points_actuels": 250,
		"points_cumules": 1800,
		"points_utilises": 1550,
		"statut": "Or",
		"est_actif": true
	}`

	var r LoyaltyRecord
	if err := json.Unmarshal([]byte(payload), &r); err != nil {
		t.Fatalf("Failed to unmarshal loyalty record: %v", err)
	}
	if r.ClientID != "C001" {
		t.Errorf("ClientID = %q, want C001", r.ClientID)
	}
	if r.Name != "Marie Dupont" {
		t.Errorf("Name = %q, want Marie Dupont", r.Name)
	}
	if r.Age != 34 {
		t.Errorf("Age = %v, want 34", r.Age)
	}
	if r.TotalPoints != 1800 {
		t.Errorf("TotalPoints = %v, want 1800", r.TotalPoints)
	}
	if r.Status != "Or" {
		t.Errorf("Status = %q, want Or", r.Status)
	}
	if !r.Active {
		t.Error("Active = false, want true")
	}
}

func TestLoyaltyRecordUnmarshalStringNumbers(t *testing.T) {
	payload := `{"client_id": "C002", "age": "41", "points_cumules": "950.5"}`

	var r LoyaltyRecord
	if err := json.Unmarshal([]byte(payload), &r); err != nil {
		t.Fatalf("Failed to unmarshal loyalty record: %v", err)
	}
	if r.Age != 41 {
		t.Errorf("Age = %v, want 41", r.Age)
	}
	if r.TotalPoints != 950.5 {
		t.Errorf("TotalPoints = %v, want 950.5", r.TotalPoints)
	}
}

func TestLoyaltyRecordValidate(t *testing.T) {
	tests := []struct {
		name     string
		clientID string
		wantErr  bool
	}{
		{"valid id", "C001", false},
		{"empty id", "", true},
		{"whitespace id", "   ", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := LoyaltyRecord{ClientID: tt.clientID}
			err := r.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPurchaseRecordUnmarshal(t *testing.T) {
	payload := `{
		"Client_ID": "C001",
		"Âge": 34,
		"Sexe": "Femme",
		"Total_Achat (€)": 127.40,
		"Nombre_Produits": 3,
		"Date_Achat": "2024-01-10",
		"Produits": [
			{"Catégorie": "Alimentaire", "Nom_Produit": "Café", "Total_Coût_Produit (€)": 12.40},
			{"Catégorie": "Électronique", "Nom_Produit": "Casque", "Total_Coût_Produit (€)": 115.00}
		]
	}`

	var r PurchaseRecord
	if err := json.Unmarshal([]byte(payload), &r); err != nil {
		t.Fatalf("Failed to unmarshal purchase record: %v", err)
	}
	if r.ClientID != "C001" {
		t.Errorf("ClientID = %q, want C001", r.ClientID)
	}
	if r.Total != 127.40 {
		t.Errorf("Total = %v, want 127.40", r.Total)
	}
	if r.Date != "2024-01-10" {
		t.Errorf("Date = %q, want 2024-01-10", r.Date)
	}
	if len(r.Products) != 2 {
		t.Fatalf("len(Products) = %d, want 2", len(r.Products))
	}
	if r.Products[0].Category != "Alimentaire" || r.Products[0].Cost != 12.40 {
		t.Errorf("Products[0] = %+v, want Alimentaire at 12.40", r.Products[0])
	}
	if r.Products[1].Name != "Casque" {
		t.Errorf("Products[1].Name = %q, want Casque", r.Products[1].Name)
	}
}

func TestPurchaseRecordUnmarshalKeyVariants(t *testing.T) {
	payload := `{
		"client_id": "C003",
		"Total_Achat": 50,
		"Jour_Achat": "2023-06-01",
		"Produits": [{"Categorie": "Mode", "Nom_Produit": "Écharpe", "Coût": 50}]
	}`

	var r PurchaseRecord
	if err := json.Unmarshal([]byte(payload), &r); err != nil {
		t.Fatalf("Failed to unmarshal purchase record: %v", err)
	}
	if r.ClientID != "C003" {
		t.Errorf("ClientID = %q, want C003", r.ClientID)
	}
	if r.Total != 50 {
		t.Errorf("Total = %v, want 50", r.Total)
	}
	if r.Date != "2023-06-01" {
		t.Errorf("Date = %q, want 2023-06-01", r.Date)
	}
	if len(r.Products) != 1 || r.Products[0].Category != "Mode" || r.Products[0].Cost != 50 {
		t.Errorf("Products = %+v, want one Mode item at 50", r.Products)
	}
}

func TestPurchaseRecordUnmarshalMissingProducts(t *testing.T) {
	var r PurchaseRecord
	if err := json.Unmarshal([]byte(`{"Client_ID": "C004", "Total_Achat (€)": 10}`), &r); err != nil {
		t.Fatalf("Failed to unmarshal purchase record: %v", err)
	}
	if r.Products != nil {
		t.Errorf("Products = %+v, want nil", r.Products)
	}
}

func TestPurchaseProfileDominantCategory(t *testing.T) {
	p := NewPurchaseProfile()
	if _, ok := p.DominantCategory(); ok {
		t.Error("DominantCategory on empty profile reported ok")
	}

	p.Add("Mode", "Écharpe", 40)
	p.Add("Alimentaire", "Café", 40)
	p.Add("Alimentaire", "Thé", 10)

	got, ok := p.DominantCategory()
	if !ok || got != "Alimentaire" {
		t.Errorf("DominantCategory() = %q,%v, want Alimentaire,true", got, ok)
	}
}

func TestPurchaseProfileDominantCategoryTie(t *testing.T) {
	p := NewPurchaseProfile()
	p.Add("Mode", "Écharpe", 40)
	p.Add("Sport", "Ballon", 40)

	// Equal spend keeps the first-seen category.
	got, ok := p.DominantCategory()
	if !ok || got != "Mode" {
		t.Errorf("DominantCategory() = %q,%v, want Mode,true", got, ok)
	}
}

func TestTimeSeriesFeaturesVectorOrder(t *testing.T) {
	f := TimeSeriesFeatures{
		RollingAvg:  1,
		Trend:       2,
		Seasonality: 3,
		Volatility:  4,
		LastAmount:  6,
		MaxAmount:   5,
		TotalSpent:  8,
		AvgAmount:   9,
		PeriodCount: 7,
	}
	vec := f.Vector()
	if len(vec) != len(TimeSeriesFeatureNames) {
		t.Fatalf("len(Vector()) = %d, want %d", len(vec), len(TimeSeriesFeatureNames))
	}
	for i, want := range []float64{1, 2, 3, 4, 5, 6, 7, 8, 9} {
		if vec[i] != want {
			t.Errorf("Vector()[%d] (%s) = %v, want %v", i, TimeSeriesFeatureNames[i], vec[i], want)
		}
	}
}
