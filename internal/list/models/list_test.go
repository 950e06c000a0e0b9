package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "listly/pkg/domain"
	dErrors "listly/pkg/domain-errors"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestList(t *testing.T) (*List, id.UserID) {
	t.Helper()
	owner := id.NewUserID()
	l, err := NewList(id.NewListID(), "groceries", "weekly shop", owner, fixedNow)
	require.NoError(t, err)
	return l, owner
}

func texts(l *List) []string {
	out := make([]string, len(l.Items))
	for i, item := range l.Items {
		out[i] = item.Text
	}
	return out
}

func assertContiguousOrder(t *testing.T, l *List) {
	t.Helper()
	for i, item := range l.Items {
		assert.Equal(t, i, item.Order, "item %q", item.Text)
	}
}

func TestNewList(t *testing.T) {
	owner := id.NewUserID()

	l, err := NewList(id.NewListID(), "  groceries  ", "", owner, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, "groceries", l.Name, "name is trimmed")
	assert.Equal(t, []id.UserID{owner}, l.Users)
	assert.Empty(t, l.Items)
	assert.Equal(t, fixedNow, l.CreatedAt)
}

func TestNewList_Validation(t *testing.T) {
	owner := id.NewUserID()

	_, err := NewList(id.NewListID(), "   ", "", owner, fixedNow)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))

	long := make([]byte, 129)
	for i := range long {
		long[i] = 'x'
	}
	_, err = NewList(id.NewListID(), string(long), "", owner, fixedNow)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}

func TestCanAccess(t *testing.T) {
	l, owner := newTestList(t)

	assert.True(t, l.CanAccess(owner))
	assert.False(t, l.CanAccess(id.NewUserID()))
}

func TestAddItem_FrontInsertAndRenumber(t *testing.T) {
	l, _ := newTestList(t)

	_, err := l.AddItem(id.NewItemID(), "milk", nil, fixedNow)
	require.NoError(t, err)
	_, err = l.AddItem(id.NewItemID(), "eggs", nil, fixedNow)
	require.NoError(t, err)
	_, err = l.AddItem(id.NewItemID(), "bread", nil, fixedNow)
	require.NoError(t, err)

	assert.Equal(t, []string{"bread", "eggs", "milk"}, texts(l), "newest item is first")
	assertContiguousOrder(t, l)
}

func TestAddItem_EmptyText(t *testing.T) {
	l, _ := newTestList(t)

	_, err := l.AddItem(id.NewItemID(), "   ", nil, fixedNow)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	assert.Empty(t, l.Items)
}

func TestUpdateItemText(t *testing.T) {
	l, _ := newTestList(t)
	item, err := l.AddItem(id.NewItemID(), "milk", nil, fixedNow)
	require.NoError(t, err)

	require.NoError(t, l.UpdateItemText(item.ID, "oat milk"))
	assert.Equal(t, "oat milk", l.Items[0].Text)

	err = l.UpdateItemText(id.NewItemID(), "whatever")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestCompleteItem(t *testing.T) {
	l, _ := newTestList(t)
	item, err := l.AddItem(id.NewItemID(), "milk", nil, fixedNow)
	require.NoError(t, err)

	doneAt := fixedNow.Add(time.Hour)
	require.NoError(t, l.CompleteItem(item.ID, doneAt))
	require.NotNil(t, l.Items[0].CompletedDate)
	assert.Equal(t, doneAt, *l.Items[0].CompletedDate)
}

func TestCompleteItem_AlreadyComplete(t *testing.T) {
	l, _ := newTestList(t)
	item, err := l.AddItem(id.NewItemID(), "milk", nil, fixedNow)
	require.NoError(t, err)

	first := fixedNow.Add(time.Hour)
	require.NoError(t, l.CompleteItem(item.ID, first))

	err = l.CompleteItem(item.ID, fixedNow.Add(2*time.Hour))
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidOperation))
	assert.Equal(t, first, *l.Items[0].CompletedDate, "original timestamp is preserved")
}

func TestIncompleteItem(t *testing.T) {
	l, _ := newTestList(t)
	item, err := l.AddItem(id.NewItemID(), "milk", nil, fixedNow)
	require.NoError(t, err)

	err = l.IncompleteItem(item.ID)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidOperation), "cannot reopen an item that was never completed")

	require.NoError(t, l.CompleteItem(item.ID, fixedNow))
	require.NoError(t, l.IncompleteItem(item.ID))
	assert.Nil(t, l.Items[0].CompletedDate)
}

func TestDueDateLifecycle(t *testing.T) {
	l, _ := newTestList(t)
	item, err := l.AddItem(id.NewItemID(), "milk", nil, fixedNow)
	require.NoError(t, err)

	err = l.UnsetDueDate(item.ID)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidOperation), "cannot clear an absent due date")

	due := fixedNow.Add(24 * time.Hour)
	require.NoError(t, l.SetDueDate(item.ID, due))
	assert.Equal(t, due, *l.Items[0].DueDate)

	later := due.Add(24 * time.Hour)
	require.NoError(t, l.SetDueDate(item.ID, later), "setting over an existing due date replaces it")
	assert.Equal(t, later, *l.Items[0].DueDate)

	require.NoError(t, l.UnsetDueDate(item.ID))
	assert.Nil(t, l.Items[0].DueDate)
}

func TestRemoveItem_RenumbersRemainder(t *testing.T) {
	l, _ := newTestList(t)
	for _, text := range []string{"milk", "eggs", "bread"} {
		_, err := l.AddItem(id.NewItemID(), text, nil, fixedNow)
		require.NoError(t, err)
	}
	// Sequence is bread, eggs, milk. Remove the middle one.
	middle := l.Items[1].ID

	require.NoError(t, l.RemoveItem(middle))
	assert.Equal(t, []string{"bread", "milk"}, texts(l))
	assertContiguousOrder(t, l)

	err := l.RemoveItem(middle)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestReorderItems_AuthoritativeOverwrite(t *testing.T) {
	l, _ := newTestList(t)
	for _, text := range []string{"milk", "eggs", "bread"} {
		_, err := l.AddItem(id.NewItemID(), text, nil, fixedNow)
		require.NoError(t, err)
	}

	// Reverse the sequence and drop the last entry.
	reordered := []Item{l.Items[2], l.Items[0]}
	l.ReorderItems(reordered)

	assert.Equal(t, []string{"milk", "bread"}, texts(l), "omitted items are dropped, order is caller-supplied")
	assertContiguousOrder(t, l)

	l.ReorderItems(nil)
	assert.NotNil(t, l.Items)
	assert.Empty(t, l.Items)
}

func TestAddUser_PrependsAndDuplicates(t *testing.T) {
	l, owner := newTestList(t)
	friend := id.NewUserID()

	l.AddUser(friend)
	assert.Equal(t, []id.UserID{friend, owner}, l.Users)

	l.AddUser(friend)
	assert.Len(t, l.Users, 3, "adding twice duplicates the entry")
}

func TestRemoveUser(t *testing.T) {
	l, owner := newTestList(t)
	friend := id.NewUserID()
	l.AddUser(friend)

	require.NoError(t, l.RemoveUser(friend))
	assert.Equal(t, []id.UserID{owner}, l.Users)
}

func TestRemoveUser_LastMember(t *testing.T) {
	l, owner := newTestList(t)

	err := l.RemoveUser(owner)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidOperation))
	assert.Equal(t, []id.UserID{owner}, l.Users, "membership is untouched")

	// The floor check runs before the lookup: a sole member removing a
	// stranger still sees the invariant error.
	err = l.RemoveUser(id.NewUserID())
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidOperation))
}

func TestRemoveUser_NotAMember(t *testing.T) {
	l, _ := newTestList(t)
	l.AddUser(id.NewUserID())

	err := l.RemoveUser(id.NewUserID())
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

// TestItemLifecycleScenario walks one list through the whole item lifecycle
// to catch interactions single-operation tests miss.
func TestItemLifecycleScenario(t *testing.T) {
	l, _ := newTestList(t)

	milk, err := l.AddItem(id.NewItemID(), "milk", nil, fixedNow)
	require.NoError(t, err)
	milkID := milk.ID

	due := fixedNow.Add(48 * time.Hour)
	eggs, err := l.AddItem(id.NewItemID(), "eggs", &due, fixedNow)
	require.NoError(t, err)
	eggsID := eggs.ID

	assert.Equal(t, []string{"eggs", "milk"}, texts(l))
	require.NotNil(t, l.Items[0].DueDate)

	require.NoError(t, l.CompleteItem(milkID, fixedNow.Add(time.Hour)))
	require.NoError(t, l.UnsetDueDate(eggsID))
	require.NoError(t, l.RemoveItem(milkID))

	assert.Equal(t, []string{"eggs"}, texts(l))
	assertContiguousOrder(t, l)
	assert.Nil(t, l.Items[0].DueDate)
	assert.Nil(t, l.Items[0].CompletedDate)
}
