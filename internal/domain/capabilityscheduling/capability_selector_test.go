package capabilityscheduling_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/capabilityscheduling"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/shared"
)

func TestCanPerform_SingleCapabilityOnlyNeedsPresence(t *testing.T) {
	selector := capabilityscheduling.CanPerformOneOf(shared.Skill("JAVA"), shared.Skill("PYTHON"))

	assert.True(t, selector.CanPerform(shared.Skill("JAVA")))
	assert.True(t, selector.CanPerform(shared.Skill("PYTHON")))
	assert.False(t, selector.CanPerform(shared.Skill("RUST")))
}

func TestCanPerform_ManyRequiresAllSimultaneously(t *testing.T) {
	oneOf := capabilityscheduling.CanPerformOneOf(shared.Skill("JAVA"), shared.Skill("PYTHON"))
	allAtOnce := capabilityscheduling.CanPerformAllAtTheTime(shared.Skill("JAVA"), shared.Skill("PYTHON"))

	assert.False(t, oneOf.CanPerform(shared.Skill("JAVA"), shared.Skill("PYTHON")))
	assert.True(t, allAtOnce.CanPerform(shared.Skill("JAVA"), shared.Skill("PYTHON")))
	assert.False(t, allAtOnce.CanPerform(shared.Skill("JAVA"), shared.Skill("RUST")))
}

func TestCanPerform_TypeMatters(t *testing.T) {
	selector := capabilityscheduling.CanJustPerform(shared.Skill("DATABASE"))

	assert.True(t, selector.CanPerform(shared.Skill("DATABASE")))
	assert.False(t, selector.CanPerform(shared.Asset("DATABASE")))
}
