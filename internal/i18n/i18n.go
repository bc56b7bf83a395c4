// Package i18n localizes the short message codes surfaced to users.
// French is the product's default language; English is negotiated from the
// Accept-Language header. Unknown codes fall back to the code itself so a
// missing translation never hides a diagnostic.
package i18n

import "strings"

const defaultLang = "fr"

var translations = map[string]map[string]string{
	"fr": {
		"required":             "Requis",
		"skipped":              "Règle ignorée : condition non remplie",
		"unbound_variable":     "Champ requis non renseigné",
		"type_mismatch":        "Types incompatibles dans l'expression",
		"not_a_number":         "Division par zéro dans l'expression",
		"invalid_quantity":     "Quantité invalide",
		"no_candidate_product": "Aucun produit dans la catégorie cible",
		"malformed_expression": "Expression mal formée (configuration corrompue)",
		"not_found":            "Modèle ou règles introuvables pour cette sélection",
	},
	"en": {
		"required":             "Required",
		"skipped":              "Rule skipped: condition not met",
		"unbound_variable":     "Required field not filled in",
		"type_mismatch":        "Incompatible types in expression",
		"not_a_number":         "Division by zero in expression",
		"invalid_quantity":     "Invalid quantity",
		"no_candidate_product": "No product in the target category",
		"malformed_expression": "Malformed expression (corrupt configuration)",
		"not_found":            "Template or rules missing for this selection",
	},
}

// DetectLanguage picks a supported language from an Accept-Language header,
// defaulting to French.
func DetectLanguage(acceptLanguage string) string {
	first := strings.TrimSpace(strings.SplitN(acceptLanguage, ",", 2)[0])
	lang := strings.ToLower(strings.SplitN(first, "-", 2)[0])
	if _, ok := translations[lang]; ok {
		return lang
	}
	return defaultLang
}

// T translates a message code. Unknown languages fall back to French;
// unknown codes fall back to the code itself.
func T(lang, code string) string {
	if m, ok := translations[lang]; ok {
		if s, ok := m[code]; ok {
			return s
		}
	}
	if s, ok := translations[defaultLang][code]; ok {
		return s
	}
	return code
}
