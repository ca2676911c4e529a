package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContinuityCharacter_Validation(t *testing.T) {
	tests := []struct {
		name     string
		charName string
		location string
		status   string
		wantErr  bool
	}{
		{name: "valid", charName: "Mira", location: "The Old Mill", status: "wounded", wantErr: false},
		{name: "empty name", charName: "", location: "The Old Mill", status: "wounded", wantErr: true},
		{name: "blank name", charName: "   ", location: "The Old Mill", status: "wounded", wantErr: true},
		{name: "empty location", charName: "Mira", location: "", status: "wounded", wantErr: true},
		{name: "empty status", charName: "Mira", location: "The Old Mill", status: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewContinuityCharacter(tt.charName, tt.location, tt.status, nil)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewContinuityCharacter_DedupesInventory(t *testing.T) {
	c, err := NewContinuityCharacter("Mira", "The Old Mill", "resting", []string{"lantern", "Lantern", "rope", "lantern"})
	require.NoError(t, err)
	assert.Equal(t, []string{"lantern", "rope"}, c.Inventory)
}

func TestContinuityState_AddOrUpdateCharacter_LastWriteWins(t *testing.T) {
	var state ContinuityState

	first, err := NewContinuityCharacter("Mira", "The Old Mill", "resting", []string{"lantern"})
	require.NoError(t, err)
	state.AddOrUpdateCharacter(first)

	second, err := NewContinuityCharacter("MIRA", "The Ferry", "fleeing", nil)
	require.NoError(t, err)
	state.AddOrUpdateCharacter(second)

	require.Len(t, state.Characters, 1)
	got, ok := state.Character("mira")
	require.True(t, ok)
	assert.Equal(t, "Mira", got.Name)
	assert.Equal(t, "The Ferry", got.CurrentLocation)
	assert.Equal(t, "fleeing", got.Status)
	assert.Empty(t, got.Inventory)
}

func TestContinuityState_RemoveCharacter(t *testing.T) {
	var state ContinuityState
	c, err := NewContinuityCharacter("Mira", "The Old Mill", "resting", nil)
	require.NoError(t, err)
	state.AddOrUpdateCharacter(c)

	assert.False(t, state.RemoveCharacter("nobody"))
	assert.True(t, state.RemoveCharacter("MIRA"))
	assert.Empty(t, state.Characters)
}

func TestContinuityState_ObjectsAndThreads(t *testing.T) {
	var state ContinuityState

	obj, err := NewContinuityObject("Brass Key", "Mira", "The Old Mill")
	require.NoError(t, err)
	state.AddOrUpdateObject(obj)

	replacement, err := NewContinuityObject("brass key", "", "The Ferry")
	require.NoError(t, err)
	state.AddOrUpdateObject(replacement)

	require.Len(t, state.Objects, 1)
	got, ok := state.Object("Brass Key")
	require.True(t, ok)
	assert.Empty(t, got.Holder)
	assert.Equal(t, "The Ferry", got.Location)

	thread, err := NewPlotThread("debt", "Mira owes the ferryman", "in progress")
	require.NoError(t, err)
	state.AddOrUpdatePlotThread(thread)

	resolved, err := NewPlotThread("DEBT", "Mira owes the ferryman", "resolved")
	require.NoError(t, err)
	state.AddOrUpdatePlotThread(resolved)

	require.Len(t, state.PlotThreads, 1)
	gotThread, ok := state.PlotThread("debt")
	require.True(t, ok)
	assert.Equal(t, "resolved", gotThread.Status)
}

func TestContinuityState_AddLocation_SkipsDuplicates(t *testing.T) {
	var state ContinuityState
	state.AddLocation("The Old Mill")
	state.AddLocation("the old mill")
	state.AddLocation("The Ferry")
	state.AddLocation("  ")

	assert.Equal(t, []string{"The Old Mill", "The Ferry"}, state.LocationsVisited)
}

func TestContinuityState_Recap_Empty(t *testing.T) {
	var state ContinuityState
	assert.Equal(t, "No specific continuity state to maintain.", state.Recap())
}

func TestContinuityState_Recap_CharacterWithoutInventory(t *testing.T) {
	var state ContinuityState
	c, err := NewContinuityCharacter("Mira", "The Old Mill", "resting", nil)
	require.NoError(t, err)
	state.AddOrUpdateCharacter(c)

	recap := state.Recap()
	assert.Equal(t, "Characters:\n- Mira: Currently at The Old Mill, resting", recap)
	assert.NotContains(t, recap, "carrying:")
}

func TestContinuityState_Recap_FullState(t *testing.T) {
	var state ContinuityState

	c, err := NewContinuityCharacter("Mira", "The Ferry", "fleeing", []string{"lantern", "rope"})
	require.NoError(t, err)
	state.AddOrUpdateCharacter(c)

	held, err := NewContinuityObject("Brass Key", "Mira", "The Old Mill")
	require.NoError(t, err)
	state.AddOrUpdateObject(held)

	loose, err := NewContinuityObject("Ledger", "", "The Old Mill")
	require.NoError(t, err)
	state.AddOrUpdateObject(loose)

	state.AddLocation("The Old Mill")
	state.AddLocation("The Ferry")

	thread, err := NewPlotThread("debt", "Mira owes the ferryman", "in progress")
	require.NoError(t, err)
	state.AddOrUpdatePlotThread(thread)

	want := "Characters:\n" +
		"- Mira: Currently at The Ferry, fleeing, carrying: lantern, rope\n" +
		"Objects:\n" +
		"- Brass Key: Held by Mira\n" +
		"- Ledger: Located at The Old Mill\n" +
		"Locations Visited: The Old Mill, The Ferry\n" +
		"Open Plot Threads:\n" +
		"- Mira owes the ferryman (Status: in progress)"
	assert.Equal(t, want, state.Recap())
}

func TestContinuityState_Recap_OmitsEmptySections(t *testing.T) {
	var state ContinuityState
	state.AddLocation("The Ferry")

	recap := state.Recap()
	assert.Equal(t, "Locations Visited: The Ferry", recap)
	assert.NotContains(t, recap, "Characters:")
	assert.NotContains(t, recap, "Objects:")
	assert.NotContains(t, recap, "Open Plot Threads:")
}
