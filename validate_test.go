package aioconf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAcceptsWellFormedSpec(t *testing.T) {
	assert.NoError(t, Validate(buildNestedSpec()))
}

func TestValidateRejectsDuplicateNames(t *testing.T) {
	t.Run("SameLevel", func(t *testing.T) {
		spec := NewSpec().Add(
			Option("x", KindString).WithDefault("a"),
			Option("x", KindInt).WithDefault(1),
		)

		err := Validate(spec)
		require.Error(t, err)

		var dup *DuplicateOptionError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, "x", dup.Path)
	})

	t.Run("NestedLevel", func(t *testing.T) {
		spec := NewSpec()
		spec.Section("server").Add(
			Option("host", KindString).WithDefault("a"),
			Option("host", KindString).WithDefault("b"),
		)

		var dup *DuplicateOptionError
		require.ErrorAs(t, Validate(spec), &dup)
		assert.Equal(t, "server.host", dup.Path)
	})

	t.Run("OptionCollidesWithSection", func(t *testing.T) {
		spec := NewSpec().Add(Option("database", KindString).WithDefault("x"))
		spec.Section("database").Add(Option("host", KindString).WithDefault("h"))

		var dup *DuplicateOptionError
		require.ErrorAs(t, Validate(spec), &dup)
		assert.Equal(t, "database", dup.Path)
	})

	t.Run("SameNameAtDifferentLevelsIsFine", func(t *testing.T) {
		spec := NewSpec().Add(Option("host", KindString).WithDefault("root"))
		spec.Section("database").Add(Option("host", KindString).WithDefault("db"))
		assert.NoError(t, Validate(spec))
	})
}

func TestValidateRejectsRequiredWithoutDefault(t *testing.T) {
	t.Run("Root", func(t *testing.T) {
		spec := NewSpec().Add(Option("token", KindString).Require())

		var missing *MissingDefaultError
		require.ErrorAs(t, Validate(spec), &missing)
		assert.Equal(t, "token", missing.Path)
	})

	t.Run("Nested", func(t *testing.T) {
		spec := NewSpec()
		spec.Section("auth").Add(Option("key", KindString).Require())

		var missing *MissingDefaultError
		require.ErrorAs(t, Validate(spec), &missing)
		assert.Equal(t, "auth.key", missing.Path)
	})

	t.Run("RequiredWithDefaultPasses", func(t *testing.T) {
		spec := NewSpec().Add(Option("token", KindString).WithDefault("x").Require())
		assert.NoError(t, Validate(spec))
	})
}

func TestValidateRejectsEmptyName(t *testing.T) {
	spec := NewSpec().Add(Option("", KindString).WithDefault("x"))
	assert.Error(t, Validate(spec))
}
