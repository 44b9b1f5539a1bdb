package validator

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type createProductInput struct {
	Name     string `json:"name" validate:"required,min=2"`
	Price    int64  `json:"price" validate:"required,gt=0"`
	Category string `json:"category" validate:"required"`
	ImageURL string `json:"image_url" validate:"omitempty,url"`
	Badge    string `json:"badge" validate:"omitempty,oneof=ХИТ NEW SALE"`
}

func TestValidate_Valid(t *testing.T) {
	in := createProductInput{Name: "Платье миди", Price: 459000, Category: "Платья"}
	assert.NoError(t, Validate(in))
}

func TestValidate_MissingRequired(t *testing.T) {
	in := createProductInput{Price: 100}
	err := Validate(in)
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	fields := valErr.Fields()
	assert.Contains(t, fields, "Name")
	assert.Contains(t, fields, "Category")
	assert.Equal(t, "is required", fields["Name"])
}

func TestValidate_OneOf(t *testing.T) {
	in := createProductInput{Name: "Туника", Price: 100, Category: "Туники", Badge: "WOW"}
	err := Validate(in)
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Fields()["Badge"], "must be one of")
}

func TestValidate_ErrorMessage(t *testing.T) {
	in := createProductInput{Name: "x", Price: 0, Category: "Брюки"}
	err := Validate(in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Name")
	assert.Contains(t, err.Error(), "Price")
}

func TestDecodeAndValidate_Valid(t *testing.T) {
	body := `{"name":"Блуза","price":259000,"category":"Блузы"}`
	req := httptest.NewRequest("POST", "/products", strings.NewReader(body))

	var in createProductInput
	require.NoError(t, DecodeAndValidate(req, &in))
	assert.Equal(t, "Блуза", in.Name)
	assert.Equal(t, int64(259000), in.Price)
}

func TestDecodeAndValidate_MalformedJSON(t *testing.T) {
	req := httptest.NewRequest("POST", "/products", strings.NewReader("{not json"))

	var in createProductInput
	err := DecodeAndValidate(req, &in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode request body")
}

func TestDecodeAndValidate_InvalidPayload(t *testing.T) {
	req := httptest.NewRequest("POST", "/products", strings.NewReader(`{"name":"Кардиган"}`))

	var in createProductInput
	err := DecodeAndValidate(req, &in)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
}
