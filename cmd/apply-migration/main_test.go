package main

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitStatementsKeepsStatementAfterCommentBlock(t *testing.T) {
	input := `-- header comment
-- second comment line

CREATE TABLE a (id INT);
CREATE TABLE b (id INT);
-- trailing comment only
`
	statements := splitStatements(input)
	require.Len(t, statements, 2)
	require.Equal(t, "CREATE TABLE a (id INT)", statements[0])
	require.Equal(t, "CREATE TABLE b (id INT)", statements[1])
}

func TestSplitStatementsInitMigration(t *testing.T) {
	content, err := os.ReadFile("../../migrations/0001_init.sql")
	require.NoError(t, err)

	statements := splitStatements(string(content))
	require.Len(t, statements, 6)
	require.Contains(t, statements[0], "CREATE TABLE IF NOT EXISTS owners")
	require.Contains(t, statements[1], "CREATE TABLE IF NOT EXISTS properties")
	require.Contains(t, statements[3], "CREATE TABLE IF NOT EXISTS repairs")
	for _, stmt := range statements {
		for _, line := range strings.Split(stmt, "\n") {
			require.False(t, strings.HasPrefix(strings.TrimSpace(line), "--"))
		}
	}
}
