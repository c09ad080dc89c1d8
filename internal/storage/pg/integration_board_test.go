package pg

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kanban/internal/domain"
)

// requireSingleDefault asserts the single-default invariant for a user and
// returns the id of the default board.
func requireSingleDefault(t *testing.T, userId domain.UserId) domain.BoardId {
	t.Helper()
	var id domain.BoardId
	var count int
	err := storage.db.QueryRow(`
        SELECT max(id), count(*) FROM boards
        WHERE user_id = $1 AND is_default`, userId).Scan(&id, &count)
	require.NoError(t, err)
	require.Equal(t, 1, count, "user %d should have exactly one default board", userId)
	return id
}

func TestCreateBoard(t *testing.T) {
	t.Run("create plain board", func(t *testing.T) {
		user := setupUser(t)

		board, err := storage.CreateBoard(user.Id, domain.BoardCreationData{Name: "Work", Description: "work stuff", Color: "#ff0000"})
		require.NoError(t, err)
		assert.Equal(t, "Work", board.Name)
		assert.Equal(t, "work stuff", board.Description)
		assert.Equal(t, "#ff0000", board.Color)
		assert.False(t, board.IsDefault, "plain creation should not steal the default flag")
		assert.Equal(t, user.Id, board.UserId)

		// Registration default board keeps the flag
		def, err := storage.DefaultBoard(user.Id)
		require.NoError(t, err)
		assert.NotEqual(t, board.Id, def.Id)
	})

	t.Run("empty color falls back to default palette", func(t *testing.T) {
		user := setupUser(t)

		board, err := storage.CreateBoard(user.Id, domain.BoardCreationData{Name: "Plain"})
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultBoardColor, board.Color)
	})

	t.Run("creating as default moves the flag", func(t *testing.T) {
		user := setupUser(t)

		board, err := storage.CreateBoard(user.Id, domain.BoardCreationData{Name: "New Default", IsDefault: true})
		require.NoError(t, err)
		assert.True(t, board.IsDefault)

		defaultId := requireSingleDefault(t, user.Id)
		assert.Equal(t, board.Id, defaultId)
	})

	t.Run("boards of different users are independent", func(t *testing.T) {
		alice := setupUser(t)
		bob := setupUser(t)

		_, err := storage.CreateBoard(alice.Id, domain.BoardCreationData{Name: "Mine", IsDefault: true})
		require.NoError(t, err)

		// Alice taking a new default must not disturb Bob's
		bobDef, err := storage.DefaultBoard(bob.Id)
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultBoardName, bobDef.Name)
		requireSingleDefault(t, bob.Id)
	})
}

func TestGetBoards(t *testing.T) {
	user := setupUser(t)

	work, err := storage.CreateBoard(user.Id, domain.BoardCreationData{Name: "Work"})
	require.NoError(t, err)
	home, err := storage.CreateBoard(user.Id, domain.BoardCreationData{Name: "Home"})
	require.NoError(t, err)

	t.Run("default first then by creation time", func(t *testing.T) {
		boards, err := storage.Boards(user.Id)
		require.NoError(t, err)
		require.Len(t, boards, 3)
		assert.True(t, boards[0].IsDefault)
		assert.Equal(t, work.Id, boards[1].Id)
		assert.Equal(t, home.Id, boards[2].Id)
	})

	t.Run("other users see none of them", func(t *testing.T) {
		stranger := setupUser(t)
		boards, err := storage.Boards(stranger.Id)
		require.NoError(t, err)
		require.Len(t, boards, 1, "stranger should only see their own default board")
		assert.NotEqual(t, user.Id, boards[0].UserId)
	})
}

func TestGetBoard(t *testing.T) {
	user, board := setupUserAndBoard(t)

	t.Run("owner can read", func(t *testing.T) {
		got, err := storage.Board(board.Id, user.Id)
		require.NoError(t, err)
		assert.Equal(t, board.Id, got.Id)
		assert.Equal(t, board.Name, got.Name)
	})

	t.Run("non-existent board should 404", func(t *testing.T) {
		_, err := storage.Board(999999999, user.Id)
		requireNotFoundError(t, err)
	})

	t.Run("someone else's board should 404", func(t *testing.T) {
		stranger := setupUser(t)
		_, err := storage.Board(board.Id, stranger.Id)
		requireNotFoundError(t, err)
	})
}

func TestUpdateBoard(t *testing.T) {
	t.Run("partial update touches only patched fields", func(t *testing.T) {
		user, board := setupUserAndBoard(t)

		name := "Renamed"
		updated, err := storage.UpdateBoard(board.Id, user.Id, domain.BoardPatch{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", updated.Name)
		assert.Equal(t, board.Description, updated.Description, "unpatched field should survive")
		assert.Equal(t, board.Color, updated.Color, "unpatched field should survive")
		assert.False(t, updated.UpdatedAt.Before(board.UpdatedAt))
	})

	t.Run("promoting to default demotes the previous one", func(t *testing.T) {
		user, board := setupUserAndBoard(t)
		oldDefault, err := storage.DefaultBoard(user.Id)
		require.NoError(t, err)
		require.NotEqual(t, board.Id, oldDefault.Id)

		isDefault := true
		updated, err := storage.UpdateBoard(board.Id, user.Id, domain.BoardPatch{IsDefault: &isDefault})
		require.NoError(t, err)
		assert.True(t, updated.IsDefault)

		defaultId := requireSingleDefault(t, user.Id)
		assert.Equal(t, board.Id, defaultId)

		demoted, err := storage.Board(oldDefault.Id, user.Id)
		require.NoError(t, err)
		assert.False(t, demoted.IsDefault)
	})

	t.Run("someone else's board should 404", func(t *testing.T) {
		_, board := setupUserAndBoard(t)
		stranger := setupUser(t)

		name := "hijacked"
		_, err := storage.UpdateBoard(board.Id, stranger.Id, domain.BoardPatch{Name: &name})
		requireNotFoundError(t, err)

		// And the board is untouched
		owner, err := storage.Board(board.Id, board.UserId)
		require.NoError(t, err)
		assert.Equal(t, board.Name, owner.Name)
	})
}

func TestDeleteBoard(t *testing.T) {
	t.Run("delete cascades to cards", func(t *testing.T) {
		user, board := setupUserAndBoard(t)
		card, err := storage.CreateCard(board.Id, user.Id, domain.CardCreationData{Title: "doomed"})
		require.NoError(t, err)

		require.NoError(t, storage.DeleteBoard(board.Id, user.Id))

		_, err = storage.Board(board.Id, user.Id)
		requireNotFoundError(t, err)
		_, err = storage.Card(card.Id, user.Id)
		requireNotFoundError(t, err)

		var orphans int
		err = storage.db.QueryRow(`
            SELECT count(*) FROM cards c
            LEFT JOIN boards b ON b.id = c.board_id
            WHERE b.id IS NULL`).Scan(&orphans)
		require.NoError(t, err)
		assert.Zero(t, orphans, "board deletion should not leave orphaned cards")
	})

	t.Run("last board cannot be deleted", func(t *testing.T) {
		user := setupUser(t)
		def, err := storage.DefaultBoard(user.Id)
		require.NoError(t, err)

		err = storage.DeleteBoard(def.Id, user.Id)
		requireStatusCode(t, err, http.StatusUnprocessableEntity)

		// Board is still there
		_, err = storage.Board(def.Id, user.Id)
		require.NoError(t, err)
	})

	t.Run("non-existent board should 404", func(t *testing.T) {
		user := setupUser(t)
		err := storage.DeleteBoard(999999999, user.Id)
		requireNotFoundError(t, err)
	})

	t.Run("someone else's board should 404 even when they have one board", func(t *testing.T) {
		victim := setupUser(t)
		victimBoard, err := storage.DefaultBoard(victim.Id)
		require.NoError(t, err)

		attacker, _ := setupUserAndBoard(t)
		err = storage.DeleteBoard(victimBoard.Id, attacker.Id)
		requireNotFoundError(t, err)

		_, err = storage.Board(victimBoard.Id, victim.Id)
		require.NoError(t, err)
	})
}

func TestBoardWithStats(t *testing.T) {
	user, board := setupUserAndBoard(t)

	for _, data := range []domain.CardCreationData{
		{Title: "a", Status: domain.StatusTodo},
		{Title: "b", Status: domain.StatusTodo},
		{Title: "c", Status: domain.StatusInProgress},
		{Title: "d", Status: domain.StatusDone},
	} {
		_, err := storage.CreateCard(board.Id, user.Id, data)
		require.NoError(t, err)
	}

	t.Run("counts per status", func(t *testing.T) {
		stats, err := storage.BoardWithStats(board.Id, user.Id)
		require.NoError(t, err)
		assert.Equal(t, board.Id, stats.Id)
		assert.Equal(t, board.Name, stats.Name)
		assert.Equal(t, 4, stats.CardCount)
		assert.Equal(t, 2, stats.TodoCount)
		assert.Equal(t, 1, stats.InProgressCount)
		assert.Equal(t, 1, stats.DoneCount)
	})

	t.Run("empty board counts zero", func(t *testing.T) {
		_, empty := setupUserAndBoard(t)
		stats, err := storage.BoardWithStats(empty.Id, empty.UserId)
		require.NoError(t, err)
		assert.Zero(t, stats.CardCount)
		assert.Zero(t, stats.TodoCount)
		assert.Zero(t, stats.InProgressCount)
		assert.Zero(t, stats.DoneCount)
	})

	t.Run("someone else's board should 404", func(t *testing.T) {
		stranger := setupUser(t)
		_, err := storage.BoardWithStats(board.Id, stranger.Id)
		requireNotFoundError(t, err)
	})
}
