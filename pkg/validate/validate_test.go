package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/storefront/pkg/validate"
)

type form struct {
	Name  string `json:"name"  validate:"required,max=10"`
	Price string `json:"price" validate:"required,numeric,gte=0"`
	Stock string `json:"stock" validate:"required,integer,gte=0"`
	Site  string `json:"site"  validate:"nullable,url"`
}

func TestStruct_Valid(t *testing.T) {
	errs := validate.Struct(&form{Name: "Pen", Price: "9.50", Stock: "100"})
	assert.Empty(t, errs)
}

func TestStruct_Required(t *testing.T) {
	errs := validate.Struct(&form{Price: "1", Stock: "1"})
	assert.Contains(t, errs, "name")

	// whitespace-only counts as empty
	errs = validate.Struct(&form{Name: "   ", Price: "1", Stock: "1"})
	assert.Contains(t, errs, "name")
}

func TestStruct_Numeric(t *testing.T) {
	errs := validate.Struct(&form{Name: "Pen", Price: "abc", Stock: "1"})
	assert.Equal(t, "The price must be a number.", errs["price"])
}

func TestStruct_NumericRejectsNonFinite(t *testing.T) {
	// ParseFloat happily parses these; a price must still reject them.
	for _, price := range []string{"NaN", "nan", "Inf", "+Inf", "-Inf", "Infinity"} {
		errs := validate.Struct(&form{Name: "Pen", Price: price, Stock: "1"})
		assert.Equal(t, "The price must be a number.", errs["price"], "price=%s", price)
	}
}

func TestStruct_Integer(t *testing.T) {
	errs := validate.Struct(&form{Name: "Pen", Price: "1", Stock: "1.5"})
	assert.Contains(t, errs, "stock")
}

func TestStruct_GteOnStrings(t *testing.T) {
	errs := validate.Struct(&form{Name: "Pen", Price: "-5", Stock: "1"})
	assert.Equal(t, "The price must be greater than or equal to 0.", errs["price"])

	errs = validate.Struct(&form{Name: "Pen", Price: "0", Stock: "-1"})
	assert.Contains(t, errs, "stock")
	assert.NotContains(t, errs, "price")
}

func TestStruct_NullableSkipsEmpty(t *testing.T) {
	errs := validate.Struct(&form{Name: "Pen", Price: "1", Stock: "1", Site: ""})
	assert.NotContains(t, errs, "site")

	errs = validate.Struct(&form{Name: "Pen", Price: "1", Stock: "1", Site: "not a url"})
	assert.Contains(t, errs, "site")

	errs = validate.Struct(&form{Name: "Pen", Price: "1", Stock: "1", Site: "https://cdn.example.com/a.png"})
	assert.NotContains(t, errs, "site")
}

func TestStruct_MaxLength(t *testing.T) {
	errs := validate.Struct(&form{Name: "a very long product name", Price: "1", Stock: "1"})
	assert.Contains(t, errs, "name")
}

func TestStruct_FirstFailingRuleWins(t *testing.T) {
	// price is both non-numeric and (unparseable for) gte — only the
	// numeric message must surface.
	errs := validate.Struct(&form{Name: "Pen", Price: "oops", Stock: "1"})
	assert.Equal(t, "The price must be a number.", errs["price"])
}
