package migration

import (
	"errors"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeEngine struct {
	upErr    error
	version  uint
	calls    []string
	steps    int
	target   uint
	forced   int
	closeErr error
}

func (e *fakeEngine) Up() error {
	e.calls = append(e.calls, "up")
	if e.upErr == nil {
		e.version = 1
	}
	return e.upErr
}

func (e *fakeEngine) Down() error {
	e.calls = append(e.calls, "down")
	return migrate.ErrNoChange
}

func (e *fakeEngine) Steps(n int) error {
	e.calls = append(e.calls, "steps")
	e.steps = n
	return nil
}

func (e *fakeEngine) Migrate(version uint) error {
	e.calls = append(e.calls, "goto")
	e.target = version
	return nil
}

func (e *fakeEngine) Version() (uint, bool, error) {
	if e.version == 0 {
		return 0, false, migrate.ErrNilVersion
	}
	return e.version, false, nil
}

func (e *fakeEngine) Force(version int) error {
	e.forced = version
	return nil
}

func (e *fakeEngine) Close() (error, error) {
	return nil, e.closeErr
}

func newTestMigrator(e *fakeEngine) *Migrator {
	return &Migrator{engine: e, logger: zap.NewNop()}
}

func TestMigrator_Run(t *testing.T) {
	t.Run("up applies and reports version", func(t *testing.T) {
		e := &fakeEngine{}
		require.NoError(t, newTestMigrator(e).Run("up", ""))
		assert.Equal(t, []string{"up"}, e.calls)
		assert.Equal(t, uint(1), e.version)
	})

	t.Run("no change is not an error", func(t *testing.T) {
		e := &fakeEngine{upErr: migrate.ErrNoChange}
		assert.NoError(t, newTestMigrator(e).Run("up", ""))
		assert.NoError(t, newTestMigrator(e).Run("down", ""))
	})

	t.Run("up failure is wrapped", func(t *testing.T) {
		e := &fakeEngine{upErr: errors.New("syntax error")}
		err := newTestMigrator(e).Run("up", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "migration up failed")
	})

	t.Run("steps goto and force parse arguments", func(t *testing.T) {
		e := &fakeEngine{version: 1}
		m := newTestMigrator(e)

		require.NoError(t, m.Run("steps", "-1"))
		assert.Equal(t, -1, e.steps)
		require.NoError(t, m.Run("goto", "1"))
		assert.Equal(t, uint(1), e.target)
		require.NoError(t, m.Run("force", "1"))
		assert.Equal(t, 1, e.forced)

		assert.Error(t, m.Run("steps", "x"))
		assert.Error(t, m.Run("sideways", ""))
	})

	t.Run("version of an empty database is zero", func(t *testing.T) {
		v, dirty, err := newTestMigrator(&fakeEngine{}).Version()
		require.NoError(t, err)
		assert.Zero(t, v)
		assert.False(t, dirty)
	})
}

func TestMigrator_Close(t *testing.T) {
	err := newTestMigrator(&fakeEngine{closeErr: errors.New("closed twice")}).Close()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to close database")
}
