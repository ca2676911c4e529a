package entities

// NarrativeFunction tags the structural job a chapter performs in the
// overall arc.
type NarrativeFunction string

// NarrativeFunction values.
const (
	NarrativeExposition            NarrativeFunction = "exposition"
	NarrativeIncitingIncident      NarrativeFunction = "inciting_incident"
	NarrativeCallToAdventure       NarrativeFunction = "call_to_adventure"
	NarrativeRefusalOfTheCall      NarrativeFunction = "refusal_of_the_call"
	NarrativeCrossingTheThreshold  NarrativeFunction = "crossing_the_threshold"
	NarrativeRisingAction          NarrativeFunction = "rising_action"
	NarrativeSubplotDevelopment    NarrativeFunction = "subplot_development"
	NarrativeCharacterIntroduction NarrativeFunction = "character_introduction"
	NarrativeCharacterDevelopment  NarrativeFunction = "character_development"
	NarrativeConflictEscalation    NarrativeFunction = "conflict_escalation"
	NarrativeTrial                 NarrativeFunction = "trial"
	NarrativeMidpointShift         NarrativeFunction = "midpoint_shift"
	NarrativeRevelation            NarrativeFunction = "revelation"
	NarrativeReversal              NarrativeFunction = "reversal"
	NarrativeDarkNight             NarrativeFunction = "dark_night_of_the_soul"
	NarrativeClimax                NarrativeFunction = "climax"
	NarrativeFallingAction         NarrativeFunction = "falling_action"
	NarrativeResolution            NarrativeFunction = "resolution"
	NarrativeDenouement            NarrativeFunction = "denouement"
	NarrativeForeshadowing         NarrativeFunction = "foreshadowing"
	NarrativeFlashback             NarrativeFunction = "flashback"
	NarrativeFlashForward          NarrativeFunction = "flash_forward"
	NarrativeTransformation        NarrativeFunction = "transformation"
)

// NarrativeFunctions lists all values in declaration order.
var NarrativeFunctions = []NarrativeFunction{
	NarrativeExposition, NarrativeIncitingIncident, NarrativeCallToAdventure,
	NarrativeRefusalOfTheCall, NarrativeCrossingTheThreshold,
	NarrativeRisingAction, NarrativeSubplotDevelopment,
	NarrativeCharacterIntroduction, NarrativeCharacterDevelopment,
	NarrativeConflictEscalation, NarrativeTrial, NarrativeMidpointShift,
	NarrativeRevelation, NarrativeReversal, NarrativeDarkNight,
	NarrativeClimax, NarrativeFallingAction, NarrativeResolution,
	NarrativeDenouement, NarrativeForeshadowing, NarrativeFlashback,
	NarrativeFlashForward, NarrativeTransformation,
}

var narrativeFunctionByLabel = buildLabelTable(NarrativeFunctions)

// ParseNarrativeFunction resolves a label to a NarrativeFunction by exact
// value match.
func ParseNarrativeFunction(label string) (NarrativeFunction, bool) {
	v, ok := narrativeFunctionByLabel[label]
	return v, ok
}
