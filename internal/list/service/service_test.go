package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listly/internal/activity"
	identitymodels "listly/internal/identity/models"
	identitystore "listly/internal/identity/store"
	"listly/internal/list/models"
	"listly/internal/list/store"
	id "listly/pkg/domain"
	dErrors "listly/pkg/domain-errors"
	"listly/pkg/requestcontext"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	svc   *Service
	users *identitystore.InMemory
	ctx   context.Context
	owner id.UserID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	users := identitystore.NewInMemory()
	svc := New(store.NewInMemory(), users)
	return &fixture{
		svc:   svc,
		users: users,
		ctx:   requestcontext.WithTime(context.Background(), fixedNow),
		owner: id.NewUserID(),
	}
}

func (f *fixture) createList(t *testing.T, name string) *models.List {
	t.Helper()
	l, err := f.svc.CreateList(f.ctx, f.owner, &models.CreateListRequest{Name: name})
	require.NoError(t, err)
	return l
}

func (f *fixture) addItem(t *testing.T, listID id.ListID, text string) *models.List {
	t.Helper()
	l, err := f.svc.AddItem(f.ctx, f.owner, listID, &models.AddItemRequest{Text: text})
	require.NoError(t, err)
	return l
}

func (f *fixture) registerUser(t *testing.T, email string) *identitymodels.User {
	t.Helper()
	user := &identitymodels.User{
		ID:        id.NewUserID(),
		Name:      "someone",
		Email:     email,
		CreatedAt: fixedNow,
	}
	require.NoError(t, f.users.Create(f.ctx, user))
	return user
}

func TestCreateList(t *testing.T) {
	f := newFixture(t)

	desc := "weekly shop"
	l, err := f.svc.CreateList(f.ctx, f.owner, &models.CreateListRequest{Name: "groceries", Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "groceries", l.Name)
	assert.Equal(t, "weekly shop", l.Description)
	assert.Equal(t, []id.UserID{f.owner}, l.Users)
	assert.Equal(t, fixedNow, l.CreatedAt)
}

func TestCreateList_DuplicateName(t *testing.T) {
	f := newFixture(t)
	f.createList(t, "groceries")

	_, err := f.svc.CreateList(f.ctx, id.NewUserID(), &models.CreateListRequest{Name: "groceries"})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict), "names are unique across all users")
}

func TestGetLists(t *testing.T) {
	f := newFixture(t)

	lists, err := f.svc.GetLists(f.ctx, f.owner)
	require.NoError(t, err)
	assert.NotNil(t, lists)
	assert.Empty(t, lists, "no lists yields an empty slice, not nil")

	f.createList(t, "groceries")
	f.createList(t, "chores")

	lists, err = f.svc.GetLists(f.ctx, f.owner)
	require.NoError(t, err)
	assert.Len(t, lists, 2)

	stranger, err := f.svc.GetLists(f.ctx, id.NewUserID())
	require.NoError(t, err)
	assert.Empty(t, stranger)
}

func TestGetList_Authorization(t *testing.T) {
	f := newFixture(t)
	l := f.createList(t, "groceries")

	_, err := f.svc.GetList(f.ctx, id.NewUserID(), l.ID)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))

	_, err = f.svc.GetList(f.ctx, f.owner, id.NewListID())
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestUpdateDescription(t *testing.T) {
	f := newFixture(t)
	l := f.createList(t, "groceries")

	desc := "weekend shop"
	updated, err := f.svc.UpdateDescription(f.ctx, f.owner, l.ID, &models.UpdateDescriptionRequest{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "weekend shop", updated.Description)

	updated, err = f.svc.UpdateDescription(f.ctx, f.owner, l.ID, &models.UpdateDescriptionRequest{})
	require.NoError(t, err)
	assert.Empty(t, updated.Description, "omitted description clears the field")
}

func TestAddItem_PersistsThroughStore(t *testing.T) {
	f := newFixture(t)
	l := f.createList(t, "groceries")

	f.addItem(t, l.ID, "milk")
	updated := f.addItem(t, l.ID, "eggs")

	require.Len(t, updated.Items, 2)
	assert.Equal(t, "eggs", updated.Items[0].Text)
	assert.Equal(t, 0, updated.Items[0].Order)
	assert.Equal(t, fixedNow, updated.Items[0].CreatedAt)

	reloaded, err := f.svc.GetList(f.ctx, f.owner, l.ID)
	require.NoError(t, err)
	assert.Equal(t, updated.Items, reloaded.Items)
}

func TestCompleteAndIncompleteItem(t *testing.T) {
	f := newFixture(t)
	l := f.createList(t, "groceries")
	updated := f.addItem(t, l.ID, "milk")
	itemID := updated.Items[0].ID

	updated, err := f.svc.CompleteItem(f.ctx, f.owner, l.ID, itemID)
	require.NoError(t, err)
	require.NotNil(t, updated.Items[0].CompletedDate)
	assert.Equal(t, fixedNow, *updated.Items[0].CompletedDate)

	_, err = f.svc.CompleteItem(f.ctx, f.owner, l.ID, itemID)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidOperation))

	updated, err = f.svc.IncompleteItem(f.ctx, f.owner, l.ID, itemID)
	require.NoError(t, err)
	assert.Nil(t, updated.Items[0].CompletedDate)
}

func TestSetDueDate_Validation(t *testing.T) {
	f := newFixture(t)
	l := f.createList(t, "groceries")
	updated := f.addItem(t, l.ID, "milk")
	itemID := updated.Items[0].ID

	_, err := f.svc.SetDueDate(f.ctx, f.owner, l.ID, itemID, &models.SetDueDateRequest{})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))

	due := fixedNow.Add(48 * time.Hour)
	updated, err = f.svc.SetDueDate(f.ctx, f.owner, l.ID, itemID, &models.SetDueDateRequest{DueDate: &due})
	require.NoError(t, err)
	assert.Equal(t, due, *updated.Items[0].DueDate)
}

func TestReorderItems(t *testing.T) {
	f := newFixture(t)
	l := f.createList(t, "groceries")
	f.addItem(t, l.ID, "milk")
	updated := f.addItem(t, l.ID, "eggs")

	reversed := []models.Item{updated.Items[1], updated.Items[0]}
	updated, err := f.svc.ReorderItems(f.ctx, f.owner, l.ID, &models.ReorderRequest{Items: reversed})
	require.NoError(t, err)
	assert.Equal(t, "milk", updated.Items[0].Text)
	assert.Equal(t, 0, updated.Items[0].Order)
	assert.Equal(t, "eggs", updated.Items[1].Text)
	assert.Equal(t, 1, updated.Items[1].Order)
}

func TestDeleteList(t *testing.T) {
	f := newFixture(t)
	l := f.createList(t, "groceries")

	require.NoError(t, f.svc.DeleteList(f.ctx, f.owner, l.ID))

	_, err := f.svc.GetList(f.ctx, f.owner, l.ID)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))

	err = f.svc.DeleteList(f.ctx, f.owner, l.ID)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestAddUserToList(t *testing.T) {
	f := newFixture(t)
	l := f.createList(t, "groceries")
	friend := f.registerUser(t, "friend@example.com")

	updated, err := f.svc.AddUserToList(f.ctx, f.owner, l.ID, &models.AddUserRequest{Email: "Friend@Example.com "})
	require.NoError(t, err)
	assert.Equal(t, []id.UserID{friend.ID, f.owner}, updated.Users, "email is normalized, new member is prepended")

	// The shared member can now mutate the list.
	_, err = f.svc.AddItem(f.ctx, friend.ID, l.ID, &models.AddItemRequest{Text: "milk"})
	assert.NoError(t, err)
}

func TestAddUserToList_UnknownEmailBeforeAuthz(t *testing.T) {
	f := newFixture(t)
	l := f.createList(t, "groceries")

	// Even a non-member caller sees "user not found": the email lookup runs
	// before the membership check.
	_, err := f.svc.AddUserToList(f.ctx, id.NewUserID(), l.ID, &models.AddUserRequest{Email: "ghost@example.com"})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	assert.Contains(t, err.Error(), "user not found")
}

func TestRemoveUserFromList(t *testing.T) {
	f := newFixture(t)
	l := f.createList(t, "groceries")
	friend := f.registerUser(t, "friend@example.com")

	_, err := f.svc.AddUserToList(f.ctx, f.owner, l.ID, &models.AddUserRequest{Email: friend.Email})
	require.NoError(t, err)

	updated, err := f.svc.RemoveUserFromList(f.ctx, f.owner, l.ID, friend.ID)
	require.NoError(t, err)
	assert.Equal(t, []id.UserID{f.owner}, updated.Users)

	_, err = f.svc.RemoveUserFromList(f.ctx, f.owner, l.ID, f.owner)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidOperation), "the last member cannot be removed")
}

func TestMutations_EmitActivity(t *testing.T) {
	inbox := make(chan activity.Event, 16)
	users := identitystore.NewInMemory()
	svc := New(store.NewInMemory(), users, WithActivity(activity.NewPublisher(inbox)))
	ctx := requestcontext.WithTime(context.Background(), fixedNow)
	owner := id.NewUserID()

	l, err := svc.CreateList(ctx, owner, &models.CreateListRequest{Name: "groceries"})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, owner, l.ID, &models.AddItemRequest{Text: "milk"})
	require.NoError(t, err)

	require.Len(t, inbox, 2)
	created := <-inbox
	assert.Equal(t, activity.ActionListCreated, created.Action)
	assert.Equal(t, owner, created.UserID)
	assert.Equal(t, "groceries", created.Subject)
	added := <-inbox
	assert.Equal(t, activity.ActionItemAdded, added.Action)
}
