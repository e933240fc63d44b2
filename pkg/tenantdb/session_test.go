package tenantdb

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingExecer struct {
	commands []string
	failOn   string
}

func (r *recordingExecer) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	r.commands = append(r.commands, sql)
	if r.failOn != "" && sql == r.failOn {
		return pgconn.CommandTag{}, errors.New("exec failed")
	}
	return pgconn.CommandTag{}, nil
}

func TestSessionCommands(t *testing.T) {
	t.Parallel()

	t.Run("enables row security and binds tenant", func(t *testing.T) {
		t.Parallel()

		cmds := sessionCommands("acme", false)
		require.Equal(t, []string{
			"SET row_security = on",
			"SET app.tenant_id = 'acme'",
		}, cmds)
	})

	t.Run("disabled mode never enables row security", func(t *testing.T) {
		t.Parallel()

		cmds := sessionCommands("acme", true)
		require.Equal(t, []string{"SET row_security = off"}, cmds)
		for _, cmd := range cmds {
			assert.NotContains(t, cmd, "row_security = on")
			assert.NotContains(t, cmd, "app.tenant_id")
		}
	})

	t.Run("tenant value is quote escaped", func(t *testing.T) {
		t.Parallel()

		// Validation rejects quotes before this point; escaping is the
		// second line of defense and must hold on its own.
		cmds := sessionCommands("o'brien", false)
		assert.Equal(t, "SET app.tenant_id = 'o''brien'", cmds[1])
	})
}

func TestConfigureSession(t *testing.T) {
	t.Parallel()

	t.Run("issues commands in order", func(t *testing.T) {
		t.Parallel()

		rec := &recordingExecer{}
		err := configureSession(context.Background(), rec, "acme", false)
		require.NoError(t, err)
		assert.Equal(t, []string{
			"SET row_security = on",
			"SET app.tenant_id = 'acme'",
		}, rec.commands)
	})

	t.Run("stops on first failure", func(t *testing.T) {
		t.Parallel()

		rec := &recordingExecer{failOn: "SET row_security = on"}
		err := configureSession(context.Background(), rec, "acme", false)
		require.Error(t, err)
		assert.Len(t, rec.commands, 1)
	})

	t.Run("disabled mode issues single command", func(t *testing.T) {
		t.Parallel()

		rec := &recordingExecer{}
		err := configureSession(context.Background(), rec, "acme", true)
		require.NoError(t, err)
		assert.Equal(t, []string{"SET row_security = off"}, rec.commands)
	})
}
