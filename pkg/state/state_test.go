package state

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdd_ReplacesPriorityInPlace(t *testing.T) {
	st := New()
	assert.False(t, st.Add("default", Record{Name: "ripgrep", Priority: 1}))
	assert.False(t, st.Add("default", Record{Name: "fd", Priority: 2}))
	assert.True(t, st.Add("default", Record{Name: "ripgrep", Priority: 7}))

	assert.Equal(t, []Record{{Name: "ripgrep", Priority: 7}, {Name: "fd", Priority: 2}}, st.Group("default"))
	assert.Equal(t, 2, st.Len())
}

func TestAdd_ZeroValue(t *testing.T) {
	var st State
	st.Add("work", Record{Name: "jq"})
	assert.Equal(t, []string{"work"}, st.Groups())
}

func TestRemove_OnlyTargetGroup(t *testing.T) {
	st := New()
	st.Add("work", Record{Name: "jq"})
	st.Add("work", Record{Name: "fd"})
	st.Add("home", Record{Name: "jq"})

	removed := st.Remove([]string{"work"}, []string{"jq"})

	assert.Equal(t, map[string][]string{"work": {"jq"}}, removed)
	assert.Equal(t, []Record{{Name: "fd"}}, st.Group("work"))
	assert.Equal(t, []Record{{Name: "jq"}}, st.Group("home"))
}

func TestRemove_AllGroupsDropsEmpty(t *testing.T) {
	st := New()
	st.Add("work", Record{Name: "jq"})
	st.Add("home", Record{Name: "jq"})
	st.Add("home", Record{Name: "htop"})

	removed := st.Remove(nil, []string{"jq", "missing"})

	assert.Len(t, removed, 2)
	assert.False(t, st.HasGroup("work"))
	assert.Equal(t, []Record{{Name: "htop"}}, st.Group("home"))
}

func TestRemove_UnknownGroup(t *testing.T) {
	st := New()
	st.Add("home", Record{Name: "jq"})

	removed := st.Remove([]string{"nope"}, []string{"jq"})

	assert.Empty(t, removed)
	assert.Equal(t, 1, st.Len())
}

func TestCollect_AscendingPriorityAcrossGroups(t *testing.T) {
	st := New()
	st.Add("b", Record{Name: "late", Priority: 9})
	st.Add("b", Record{Name: "tie-b", Priority: 1})
	st.Add("a", Record{Name: "tie-a", Priority: 1})
	st.Add("a", Record{Name: "first", Priority: 0})

	entries, missing := st.Collect(nil)
	require.Empty(t, missing)

	var names []string
	for i, e := range entries {
		names = append(names, e.Name)
		if i > 0 {
			assert.LessOrEqual(t, entries[i-1].Priority, e.Priority)
		}
	}
	assert.Equal(t, []string{"first", "tie-a", "tie-b", "late"}, names)
}

func TestCollect_DedupAndMissing(t *testing.T) {
	st := New()
	st.Add("a", Record{Name: "jq", Priority: 5})
	st.Add("b", Record{Name: "jq", Priority: 2})
	st.Add("c", Record{Name: "fd", Priority: 3})

	entries, missing := st.Collect([]string{"b", "a", "ghost", "a"})

	assert.Equal(t, []string{"ghost"}, missing)
	require.Len(t, entries, 1)
	assert.Equal(t, Entry{Group: "b", Record: Record{Name: "jq", Priority: 2}}, entries[0])
}

func TestMerge(t *testing.T) {
	st := New()
	st.Add("default", Record{Name: "jq", Priority: 1})

	other := New()
	other.Add("default", Record{Name: "jq", Priority: 4})
	other.Add("work", Record{Name: "kubectl"})

	st.Merge(other)

	assert.Equal(t, []Record{{Name: "jq", Priority: 4}}, st.Group("default"))
	assert.Equal(t, []Record{{Name: "kubectl"}}, st.Group("work"))
}

func TestRecordJSON(t *testing.T) {
	data, err := json.Marshal(Record{Name: "pkgA", Priority: 3})
	require.NoError(t, err)
	assert.JSONEq(t, `["pkgA", 3]`, string(data))

	tests := []struct {
		in      string
		want    Record
		wantErr bool
	}{
		{in: `["pkgA", 1]`, want: Record{Name: "pkgA", Priority: 1}},
		{in: `["pkgA"]`, want: Record{Name: "pkgA"}},
		{in: `"pkgA"`, want: Record{Name: "pkgA"}},
		{in: `["pkgA", -1]`, wantErr: true},
		{in: `["pkgA", 1, 2]`, wantErr: true},
		{in: `[""]`, wantErr: true},
		{in: `[]`, wantErr: true},
		{in: `{"name": "pkgA"}`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var r Record
			err := json.Unmarshal([]byte(tt.in), &r)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, r)
		})
	}
}
