package state

import list "listly/internal/list/models"

// ListState holds the collection view and the focused list.
type ListState struct {
	Lists   []*list.List
	List    *list.List
	Loading bool
	Err     string
}

// InitialLists starts loading until the first fetch resolves.
func InitialLists() ListState {
	return ListState{Loading: true}
}

// ReduceLists folds one event over the list snapshot. Mutation events carry
// the whole updated list; the reducer replaces the focused snapshot and the
// matching collection entry rather than patching fields.
func ReduceLists(state ListState, event Event) ListState {
	switch e := event.(type) {
	case GetListsEvent:
		state.Lists = e.Lists
		state.Loading = false
		state.Err = ""
		return state
	case GetListEvent:
		state.List = e.List
		state.Loading = false
		state.Err = ""
		return state
	case AddListEvent:
		lists := make([]*list.List, 0, len(state.Lists)+1)
		lists = append(lists, e.List)
		lists = append(lists, state.Lists...)
		state.Lists = lists
		state.Loading = false
		state.Err = ""
		return state
	case DeleteListEvent:
		lists := make([]*list.List, 0, len(state.Lists))
		for _, l := range state.Lists {
			if l.ID.String() != e.ID {
				lists = append(lists, l)
			}
		}
		state.Lists = lists
		if state.List != nil && state.List.ID.String() == e.ID {
			state.List = nil
		}
		state.Loading = false
		state.Err = ""
		return state
	case UpdateListEvent:
		return replaceList(state, e.List)
	case AddTodoEvent:
		return replaceList(state, e.List)
	case UpdateTodoEvent:
		return replaceList(state, e.List)
	case DeleteTodoEvent:
		return replaceList(state, e.List)
	case ListErrorEvent:
		state.Err = e.Err
		state.Loading = false
		return state
	case TodoErrorEvent:
		state.Err = e.Err
		state.Loading = false
		return state
	case LogoutEvent:
		return ListState{Loading: false}
	default:
		return state
	}
}

func replaceList(state ListState, updated *list.List) ListState {
	state.List = updated
	if updated != nil {
		lists := make([]*list.List, len(state.Lists))
		copy(lists, state.Lists)
		for i, l := range lists {
			if l.ID == updated.ID {
				lists[i] = updated
			}
		}
		state.Lists = lists
	}
	state.Loading = false
	state.Err = ""
	return state
}
