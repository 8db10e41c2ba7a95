package tasks

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIDList_Tolerance(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want IDList
	}{
		{"plain numbers", `[1,2,3]`, IDList{1, 2, 3}},
		{"string numbers coerced", `["1"," 2",3]`, IDList{1, 2, 3}},
		{"null treated as empty", `null`, IDList{}},
		{"string treated as empty", `"oops"`, IDList{}},
		{"object treated as empty", `{"a":1}`, IDList{}},
		{"uncoercible entries dropped", `[1,"x",true,2]`, IDList{1, 2}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got IDList
			require.NoError(t, json.Unmarshal([]byte(tc.in), &got))
			require.Equal(t, tc.want, got)
		})
	}
}

func TestFlexPriority(t *testing.T) {
	var p FlexPriority
	require.NoError(t, json.Unmarshal([]byte(`5`), &p))
	require.NotNil(t, p.Value)
	require.Equal(t, 5, *p.Value)

	require.NoError(t, json.Unmarshal([]byte(`"7"`), &p))
	require.NotNil(t, p.Value)
	require.Equal(t, 7, *p.Value)

	require.NoError(t, json.Unmarshal([]byte(`99`), &p))
	require.Nil(t, p.Value, "out of range leaves priority unset")

	require.NoError(t, json.Unmarshal([]byte(`"high"`), &p))
	require.Nil(t, p.Value)
}

func TestSubtaskList_NonArray(t *testing.T) {
	var req CreateTaskRequest
	body := `{"title":"T","assignee_ids":[1],"subtasks":"none"}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	require.Empty(t, req.Subtasks)
}

func TestNormalizeNotes(t *testing.T) {
	require.Equal(t, DefaultNotes, normalizeNotes(nil))
	empty := "   "
	require.Equal(t, DefaultNotes, normalizeNotes(&empty))
	some := "remember the milk"
	require.Equal(t, some, normalizeNotes(&some))
}

func TestParseDateFlexible(t *testing.T) {
	require.Nil(t, parseDateFlexible(""))
	require.Nil(t, parseDateFlexible("not a date"))

	got := parseDateFlexible("2026-03-01")
	require.NotNil(t, got)
	require.Equal(t, 2026, got.Year())

	got = parseDateFlexible("2 Jan 2026")
	require.NotNil(t, got)
}

func TestValidate_SubtaskTooManyAssignees(t *testing.T) {
	err := validateSubtaskAssignees(1, IDList{1, 2, 3, 4, 5, 6})
	require.EqualError(t, err, "Subtask 2: Maximum 5 assignees allowed")
}
