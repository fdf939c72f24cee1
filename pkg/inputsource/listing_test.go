package inputsource_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/miketth/ism/pkg/inputsource"
	"codeberg.org/miketth/ism/pkg/inputsource/inputsourcetest"
)

func TestSplitIDs(t *testing.T) {
	tests := []struct {
		raw  string
		want inputsource.List
	}{
		{"", inputsource.List{}},
		{",", inputsource.List{}},
		{"a", inputsource.List{"a"}},
		{"a,b,,c,", inputsource.List{"a", "b", "c"}},
		{",a,a,", inputsource.List{"a", "a"}},
		{"c,b,a", inputsource.List{"c", "b", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, inputsource.SplitIDs(tt.raw))
		})
	}
}

func TestJoinIDs(t *testing.T) {
	assert.Equal(t, "", inputsource.JoinIDs(nil))
	assert.Equal(t, "us,de(nodeadkeys)", inputsource.JoinIDs(inputsource.List{"us", "de(nodeadkeys)"}))
}

func TestListSources(t *testing.T) {
	svc := &inputsourcetest.FakeService{
		Lists: map[inputsource.Category]string{
			inputsource.CategoryKeyboard: "a,b,,c,",
			inputsource.CategoryAll:      "a,b,c,p",
		},
	}

	got, err := inputsource.ListSources(svc, inputsource.CategoryKeyboard)
	require.NoError(t, err)
	assert.Equal(t, inputsource.List{"a", "b", "c"}, got)

	got, err = inputsource.ListSources(svc, inputsource.CategoryPalette)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = inputsource.ListSources(svc, inputsource.CategoryAll)
	require.NoError(t, err)
	assert.Equal(t, inputsource.List{"a", "b", "c", "p"}, got)
}

func TestListSourcesError(t *testing.T) {
	boom := errors.New("boom")
	svc := &inputsourcetest.FakeService{ListErr: boom}

	_, err := inputsource.ListSources(svc, inputsource.CategoryAll)
	require.ErrorIs(t, err, boom)
}

func TestListSourcesThroughBridge(t *testing.T) {
	raw := &inputsourcetest.FakeForeign{
		Lists: map[inputsource.Category]string{inputsource.CategoryKeyboard: "a,b,,c,"},
	}

	got, err := inputsource.ListSources(inputsource.NewBridge(raw), inputsource.CategoryKeyboard)
	require.NoError(t, err)
	assert.Equal(t, inputsource.List{"a", "b", "c"}, got)
	assertReleasedOnce(t, raw, 1)

	raw.NullList = true
	got, err = inputsource.ListSources(inputsource.NewBridge(raw), inputsource.CategoryKeyboard)
	require.NoError(t, err)
	assert.Empty(t, got)
	assertReleasedOnce(t, raw, 1)
}

func TestCategoryString(t *testing.T) {
	assert.Equal(t, "keyboard", inputsource.CategoryKeyboard.String())
	assert.Equal(t, "palette", inputsource.CategoryPalette.String())
	assert.Equal(t, "all", inputsource.CategoryAll.String())
	assert.Equal(t, "unknown", inputsource.Category(9).String())
}
