package catalog

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCodes_RoundTripThroughWrapping(t *testing.T) {
	base := NewDuplicateName("item", "Batata")
	wrapped := fmt.Errorf("insert item: %w", base)

	assert.True(t, IsDuplicateName(wrapped))
	assert.False(t, IsNotFound(wrapped))
	assert.Equal(t, ErrCodeDuplicateName, CodeOf(wrapped))
}

func TestMissingItems_ListsAllNames(t *testing.T) {
	err := NewMissingItems([]string{"Fries", "Shake"})
	wrapped := fmt.Errorf("add combo: %w", err)

	assert.True(t, IsMissingItems(wrapped))
	assert.Equal(t, []string{"Fries", "Shake"}, MissingItems(wrapped))
	assert.Contains(t, err.Error(), "Fries, Shake")
}

func TestMissingItems_NilForOtherErrors(t *testing.T) {
	assert.Nil(t, MissingItems(NewNoFields()))
	assert.Nil(t, MissingItems(fmt.Errorf("plain error")))
}

func TestCodeOf_NonCatalogError(t *testing.T) {
	assert.Equal(t, ErrorCode(""), CodeOf(fmt.Errorf("boom")))
}

func TestError_Messages(t *testing.T) {
	assert.Equal(t, "NOT_FOUND: item not found (#7)", NewNotFound("item", ByID(7).String()).Error())
	assert.Equal(t, "NO_FIELDS: no fields provided to update", NewNoFields().Error())
}

func TestUpdateItemFields_Empty(t *testing.T) {
	assert.True(t, UpdateItemFields{}.Empty())

	name := "X-BBQ"
	assert.False(t, UpdateItemFields{Name: &name}.Empty())

	price := 9.0
	assert.False(t, UpdateItemFields{Price: &price}.Empty())
}

func TestItemRef_String(t *testing.T) {
	assert.Equal(t, "#42", ByID(42).String())
	assert.Equal(t, "Guaravita", ByName("Guaravita").String())
}
