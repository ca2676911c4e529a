package entities

// Archetype categorizes a cast member by Jungian archetype.
type Archetype string

// Archetype values. Labels are the exact strings expected in AI output
// and registry files.
const (
	ArchetypeHero      Archetype = "Hero"
	ArchetypeMentor    Archetype = "Mentor"
	ArchetypeInnocent  Archetype = "Innocent"
	ArchetypeExplorer  Archetype = "Explorer"
	ArchetypeSage      Archetype = "Sage"
	ArchetypeCreator   Archetype = "Creator"
	ArchetypeRuler     Archetype = "Ruler"
	ArchetypeCaregiver Archetype = "Caregiver"
	ArchetypeMagician  Archetype = "Magician"
	ArchetypeLover     Archetype = "Lover"
	ArchetypeJester    Archetype = "Jester"
	ArchetypeOutlaw    Archetype = "Outlaw"
)

// FunctionalRole categorizes what a cast member does for the plot.
type FunctionalRole string

// FunctionalRole values.
const (
	RoleProtagonist   FunctionalRole = "Protagonist"
	RoleAntagonist    FunctionalRole = "Antagonist"
	RoleDeuteragonist FunctionalRole = "Deuteragonist"
	RoleConfidant     FunctionalRole = "Confidant"
	RoleFoil          FunctionalRole = "Foil"
	RoleLoveInterest  FunctionalRole = "Love Interest"
	RoleMentorFigure  FunctionalRole = "Mentor Figure"
	RoleSidekick      FunctionalRole = "Sidekick"
	RoleCatalyst      FunctionalRole = "Catalyst"
	RoleGuardian      FunctionalRole = "Guardian"
)

// EmotionalFunction categorizes the feeling a cast member carries for the
// reader.
type EmotionalFunction string

// EmotionalFunction values.
const (
	EmotionEmpathyAnchor     EmotionalFunction = "Empathy Anchor"
	EmotionComicRelief       EmotionalFunction = "Comic Relief"
	EmotionMoralCompass      EmotionalFunction = "Moral Compass"
	EmotionTensionSource     EmotionalFunction = "Tension Source"
	EmotionHeart             EmotionalFunction = "Heart"
	EmotionVoiceOfReason     EmotionalFunction = "Voice of Reason"
	EmotionWildcard          EmotionalFunction = "Wildcard"
	EmotionGroundingPresence EmotionalFunction = "Grounding Presence"
)

// Archetypes lists all archetype values in declaration order.
var Archetypes = []Archetype{
	ArchetypeHero, ArchetypeMentor, ArchetypeInnocent, ArchetypeExplorer,
	ArchetypeSage, ArchetypeCreator, ArchetypeRuler, ArchetypeCaregiver,
	ArchetypeMagician, ArchetypeLover, ArchetypeJester, ArchetypeOutlaw,
}

// FunctionalRoles lists all functional role values in declaration order.
var FunctionalRoles = []FunctionalRole{
	RoleProtagonist, RoleAntagonist, RoleDeuteragonist, RoleConfidant,
	RoleFoil, RoleLoveInterest, RoleMentorFigure, RoleSidekick,
	RoleCatalyst, RoleGuardian,
}

// EmotionalFunctions lists all emotional function values in declaration
// order.
var EmotionalFunctions = []EmotionalFunction{
	EmotionEmpathyAnchor, EmotionComicRelief, EmotionMoralCompass,
	EmotionTensionSource, EmotionHeart, EmotionVoiceOfReason,
	EmotionWildcard, EmotionGroundingPresence,
}

// Label -> value tables, built once at startup. Lookup is exact match;
// unknown labels report not-found rather than best-effort guessing.
var (
	archetypeByLabel         = buildLabelTable(Archetypes)
	functionalRoleByLabel    = buildLabelTable(FunctionalRoles)
	emotionalFunctionByLabel = buildLabelTable(EmotionalFunctions)
)

func buildLabelTable[T ~string](values []T) map[string]T {
	table := make(map[string]T, len(values))
	for _, v := range values {
		table[string(v)] = v
	}
	return table
}

// ParseArchetype resolves a label to an Archetype by exact value match.
func ParseArchetype(label string) (Archetype, bool) {
	v, ok := archetypeByLabel[label]
	return v, ok
}

// ParseFunctionalRole resolves a label to a FunctionalRole by exact value
// match.
func ParseFunctionalRole(label string) (FunctionalRole, bool) {
	v, ok := functionalRoleByLabel[label]
	return v, ok
}

// ParseEmotionalFunction resolves a label to an EmotionalFunction by exact
// value match.
func ParseEmotionalFunction(label string) (EmotionalFunction, bool) {
	v, ok := emotionalFunctionByLabel[label]
	return v, ok
}
