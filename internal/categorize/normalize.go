package categorize

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/dvloznov/money-tracker/internal/model"
	"github.com/dvloznov/money-tracker/internal/taxonomy"
)

// categoryAlias maps a common synonym to its canonical category name.
// Aliases are an ordered list, not a map: rules 2 and 3 below scan them in
// order, and reordering changes which categories collapse together. Keep
// keys lowercase.
type categoryAlias struct {
	key       string
	canonical string
}

var categoryAliases = []categoryAlias{
	{"taxi", "Transport"},
	{"uber", "Transport"},
	{"bus", "Transport"},
	{"train", "Transport"},
	{"scooter", "Transport"},
	{"fuel", "Transport"},
	{"parking", "Transport"},
	{"grocery", "Groceries"},
	{"supermarket", "Groceries"},
	{"food", "Groceries"},
	{"restaurant", "Restaurants & Cafes"},
	{"cafe", "Restaurants & Cafes"},
	{"bar", "Restaurants & Cafes"},
	{"rent", "Housing"},
	{"mortgage", "Housing"},
	{"electricity", "Utilities"},
	{"water", "Utilities"},
	{"internet", "Communication"},
	{"phone", "Communication"},
	{"mobile", "Communication"},
	{"pharmacy", "Health & Medical"},
	{"doctor", "Health & Medical"},
	{"medicine", "Health & Medical"},
	{"cinema", "Entertainment"},
	{"movie", "Entertainment"},
	{"subscription", "Entertainment"},
	{"gym", "Sports & Fitness"},
	{"fitness", "Sports & Fitness"},
	{"salary", "Salary"},
	{"wage", "Salary"},
	{"freelance", "Freelance"},
	{"bonus", "Side Job"},
	{"dividend", "Investment"},
}

// prefixLen is the number of leading lowercase characters two category names
// must share to be treated as spelling variants of each other.
const prefixLen = 4

// Normalizer validates model-proposed category names against the taxonomy,
// resolving synonyms and near-duplicates and creating genuinely new
// categories on the fly.
type Normalizer struct {
	tax *taxonomy.Taxonomy
	log zerolog.Logger
}

// NewNormalizer creates a Normalizer backed by the shared taxonomy.
func NewNormalizer(tax *taxonomy.Taxonomy, log zerolog.Logger) *Normalizer {
	return &Normalizer{tax: tax, log: log}
}

// Normalize maps a proposed category name onto the taxonomy for the given
// type. It never fails. The matching rules run in a fixed order; swapping
// them changes which categories collapse together, so the order is part of
// the contract:
//
//  1. exact (case-sensitive) match against the taxonomy
//  2. case-insensitive exact match against the alias table
//  3. case-insensitive substring containment against an alias key,
//     in either direction
//  4. shared 4-character lowercase prefix with an existing taxonomy entry
//  5. otherwise the name is genuinely new: append it to the taxonomy
//     verbatim and persist
//
// An empty proposed name short-circuits to the default bucket without
// touching the taxonomy.
func (n *Normalizer) Normalize(ctx context.Context, proposed string, typ model.TransactionType) string {
	proposed = strings.TrimSpace(proposed)
	if proposed == "" {
		return model.DefaultCategory
	}

	// Rule 1: exact taxonomy match.
	if n.tax.Contains(typ, proposed) {
		return proposed
	}

	lower := strings.ToLower(proposed)

	// Rule 2: exact alias match.
	for _, alias := range categoryAliases {
		if lower == alias.key {
			return alias.canonical
		}
	}

	// Rule 3: alias substring containment, either direction.
	for _, alias := range categoryAliases {
		if strings.Contains(lower, alias.key) || strings.Contains(alias.key, lower) {
			return alias.canonical
		}
	}

	// Rule 4: shared prefix with an existing entry covers minor spelling
	// variants ("Grocery" vs "Groceries").
	if len(lower) >= prefixLen {
		for _, existing := range n.tax.Categories(typ) {
			existingLower := strings.ToLower(existing)
			if len(existingLower) >= prefixLen && existingLower[:prefixLen] == lower[:prefixLen] {
				return existing
			}
		}
	}

	// Rule 5: genuinely new category. The taxonomy is append-only; humans
	// curate accumulated near-duplicates out of band.
	if err := n.tax.Add(ctx, typ, proposed); err != nil {
		n.log.Warn().Err(err).Str("category", proposed).Msg("taxonomy persistence failed, new category lost for this run")
		return proposed
	}
	n.log.Info().Str("category", proposed).Str("type", string(typ)).Msg("created new category")
	return proposed
}
