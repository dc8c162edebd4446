package domain_test

import (
	"testing"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandle_Bind(t *testing.T) {
	var h domain.Handle
	assert.False(t, h.Bound)
	assert.ErrorIs(t, h.Require(), domain.ErrHandleUnbound)
	assert.Equal(t, "<unbound>", h.String())

	require.NoError(t, h.Bind("node-1"))
	assert.True(t, h.Bound)
	assert.NoError(t, h.Require())
	assert.Equal(t, "node-1", h.String())

	err := h.Bind("node-2")
	assert.ErrorIs(t, err, domain.ErrHandleBound)
	assert.Equal(t, "node-1", h.ID, "second bind must not overwrite")
}

func TestParseOrder(t *testing.T) {
	tests := []struct {
		in   string
		want domain.Order
	}{
		{"pre", domain.PreOrder},
		{"PreOrder", domain.PreOrder},
		{"in-order", domain.InOrder},
		{" post ", domain.PostOrder},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := domain.ParseOrder(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := domain.ParseOrder("level")
	assert.ErrorIs(t, err, domain.ErrInvalidOrder)
}

func TestOrder_TextRoundTrip(t *testing.T) {
	for _, o := range domain.Orders {
		text, err := o.MarshalText()
		require.NoError(t, err)

		var back domain.Order
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, o, back)
	}
}

func TestTheme_Anchors(t *testing.T) {
	theme := domain.DefaultTheme()
	left, right, top := theme.Anchors(domain.Pt(0, -400))

	assert.Equal(t, domain.Pt(-50, -400), left)
	assert.Equal(t, domain.Pt(50, -400), right)
	assert.Equal(t, domain.Pt(0, -450), top)
}
