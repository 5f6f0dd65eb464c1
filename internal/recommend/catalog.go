// Package recommend scores the static loyalty-program catalog against a
// segment's categorical tag profile and maps observed product categories to
// suggested programs. Both catalogs are pure reference data, built once and
// never mutated.
package recommend

// Program is one loyalty-program definition from the catalog.
type Program struct {
	ID                 string
	Name               string
	Description        string
	Type               string
	Benefits           []string
	IdealSegments      []string
	Effectiveness      float64 // in [0,1]
	ImplementationCost string
	RetentionRate      float64 // in [0,1]
}

// Catalog lists every program in declaration order; ranking ties keep this
// order.
var Catalog = []Program{
	{
		ID:                 "purchase_points",
		Name:               "Points per Purchase",
		Description:        "Classic program accumulating points on every purchase",
		Type:               "transactional",
		Benefits:           []string{"1 point per euro spent", "Points redeemable for discounts"},
		IdealSegments:      []string{"regular", "big spender", "premium loyal"},
		Effectiveness:      0.8,
		ImplementationCost: "medium",
		RetentionRate:      0.7,
	},
	{
		ID:                 "tiers",
		Name:               "Tiered Status Program",
		Description:        "Status levels with growing benefits",
		Type:               "status",
		Benefits:           []string{"Silver, Gold, Platinum levels", "Exclusive benefits per tier"},
		IdealSegments:      []string{"premium loyal", "regular", "aspirational"},
		Effectiveness:      0.85,
		ImplementationCost: "high",
		RetentionRate:      0.8,
	},
	{
		ID:                 "value_rewards",
		Name:               "Value-Added Rewards",
		Description:        "Non-monetary benefits with high perceived value",
		Type:               "experiential",
		Benefits:           []string{"Exclusive events", "Priority access", "Premium services"},
		IdealSegments:      []string{"high-end", "young urban", "premium loyal"},
		Effectiveness:      0.9,
		ImplementationCost: "high",
		RetentionRate:      0.85,
	},
	{
		ID:                 "cashback",
		Name:               "Cash-Back Rebates",
		Description:        "Percentage of every purchase refunded",
		Type:               "monetary",
		Benefits:           []string{"2% to 5% back on purchases"},
		IdealSegments:      []string{"budget conscious", "regular", "price sensitive"},
		Effectiveness:      0.75,
		ImplementationCost: "high",
		RetentionRate:      0.7,
	},
	{
		ID:                 "coalition",
		Name:               "Multi-Brand Program",
		Description:        "Partnership network for earning and spending points across brands",
		Type:               "partnership",
		Benefits:           []string{"Earn points at several partners", "More ways to spend points"},
		IdealSegments:      []string{"mobile", "young urban", "multi-brand"},
		Effectiveness:      0.8,
		ImplementationCost: "very high",
		RetentionRate:      0.75,
	},
	{
		ID:                 "subscription",
		Name:               "Subscription Program",
		Description:        "Monthly or yearly fee for premium benefits",
		Type:               "paid",
		Benefits:           []string{"Free delivery", "Exclusive discounts", "Priority access"},
		IdealSegments:      []string{"premium loyal", "big spender", "regular"},
		Effectiveness:      0.85,
		ImplementationCost: "medium",
		RetentionRate:      0.9,
	},
	{
		ID:                 "personalized",
		Name:               "Personalized Rewards",
		Description:        "Tailored offers based on purchase history",
		Type:               "individualized",
		Benefits:           []string{"Preference-based offers", "Product recommendations"},
		IdealSegments:      []string{"all segments", "recognition-driven"},
		Effectiveness:      0.95,
		ImplementationCost: "high",
		RetentionRate:      0.85,
	},
	{
		ID:                 "gamification",
		Name:               "Gamified Program",
		Description:        "Game mechanics to drive loyalty through challenges and badges",
		Type:               "engagement",
		Benefits:           []string{"Daily and weekly challenges", "Badges and achievements"},
		IdealSegments:      []string{"young", "tech-savvy", "gamer"},
		Effectiveness:      0.8,
		ImplementationCost: "medium",
		RetentionRate:      0.7,
	},
	{
		ID:                 "vip_club",
		Name:               "VIP Club",
		Description:        "Membership in an exclusive group with premium benefits",
		Type:               "exclusivity",
		Benefits:           []string{"Private events", "Product previews", "Dedicated service"},
		IdealSegments:      []string{"high-end", "premium loyal", "aspirational"},
		Effectiveness:      0.9,
		ImplementationCost: "high",
		RetentionRate:      0.9,
	},
	{
		ID:                 "community",
		Name:               "Community Program",
		Description:        "Program built around a customer community",
		Type:               "social",
		Benefits:           []string{"Member forum", "Product co-creation", "Review sharing"},
		IdealSegments:      []string{"engaged", "ambassador", "influencer"},
		Effectiveness:      0.85,
		ImplementationCost: "medium",
		RetentionRate:      0.8,
	},
}

// catalogByID indexes Catalog for category-driven lookups.
var catalogByID = func() map[string]*Program {
	m := make(map[string]*Program, len(Catalog))
	for i := range Catalog {
		m[Catalog[i].ID] = &Catalog[i]
	}
	return m
}()
