package shared

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Limit int    `query:"limit" validate:"gte=0,ltefield=Max"`
	Mode  string `json:"mode" validate:"omitempty,oneof=a b"`
	Max   int    `query:"-"`
}

func TestValidateRequestUsesTagNames(t *testing.T) {
	t.Parallel()

	err := ValidateRequest(&sampleRequest{Limit: 12, Mode: "c", Max: 10})
	require.Error(t, err)

	var vErrs validator.ValidationErrors
	require.True(t, errors.As(err, &vErrs))
	require.Len(t, vErrs, 2)
	assert.Equal(t, "limit", vErrs[0].Field())
	assert.Equal(t, "ltefield", vErrs[0].Tag())
	assert.Equal(t, "mode", vErrs[1].Field())
	assert.Equal(t, "oneof", vErrs[1].Tag())

	assert.NoError(t, ValidateRequest(&sampleRequest{Limit: 10, Max: 10}))
}

type selfValidating struct{}

func (selfValidating) Validate() error { return errors.New("custom") }

func TestValidateRequestPrefersValidateMethod(t *testing.T) {
	t.Parallel()
	assert.EqualError(t, ValidateRequest(selfValidating{}), "custom")
}

func TestQueryInt(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/?a=3&b=&c=x&d=-2", nil)

	v, err := QueryInt(r, "a", 5)
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	v, err = QueryInt(r, "b", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, v)

	v, err = QueryInt(r, "missing", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, v)

	_, err = QueryInt(r, "c", 5)
	assert.Error(t, err)

	v, err = QueryInt(r, "d", 5)
	require.NoError(t, err)
	assert.Equal(t, -2, v)
}
