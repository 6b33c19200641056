package postgres

import (
	"strings"
	"testing"

	"gitlab.com/amsys-2025.net/internal/domain"
)

// Every column the DDL declares as required (NOT NULL or PRIMARY KEY)
// without a DEFAULT must be one of the columns the repositories insert,
// or every write against a fresh database fails with a not-null
// violation. The table descriptors list exactly the insert columns.
func TestSchemaRequiredColumnsAreInserted(t *testing.T) {
	userTbl := domain.GetUserTable()
	assignmentTbl := domain.GetAssignmentTable()
	groupTbl := domain.GetGroupTable()
	memberTbl := domain.GetGroupMemberTable()
	submissionTbl := domain.GetSubmissionTable()

	inserted := map[string]map[string]bool{
		userTbl.GetTableName(): {
			userTbl.ID: true, userTbl.Name: true, userTbl.Email: true,
			userTbl.PasswordHash: true, userTbl.Role: true,
			userTbl.AuthProvider: true, userTbl.GoogleID: true,
			userTbl.CreatedAt: true,
		},
		assignmentTbl.GetTableName(): {
			assignmentTbl.ID: true, assignmentTbl.Title: true,
			assignmentTbl.Description: true, assignmentTbl.DueDate: true,
			assignmentTbl.ResourceLink: true, assignmentTbl.CreatorID: true,
			assignmentTbl.CreatedAt: true,
		},
		groupTbl.GetTableName(): {
			groupTbl.ID: true, groupTbl.Name: true,
			groupTbl.CreatorID: true, groupTbl.CreatedAt: true,
		},
		memberTbl.GetTableName(): {
			memberTbl.GroupID: true, memberTbl.UserID: true,
		},
		submissionTbl.GetTableName(): {
			submissionTbl.ID: true, submissionTbl.AssignmentID: true,
			submissionTbl.GroupID: true, submissionTbl.SubmitterID: true,
			submissionTbl.Confirmed: true, submissionTbl.CreatedAt: true,
		},
	}

	seen := map[string]bool{}
	for _, stmt := range schemaStatements("test") {
		table, cols := parseCreateTable(stmt)
		if table == "" {
			continue
		}
		seen[table] = true
		insertCols, ok := inserted[table]
		if !ok {
			t.Errorf("table %s has no insert column set", table)
			continue
		}
		for _, col := range cols {
			if !insertCols[col] {
				t.Errorf("table %s: required column %s is never inserted and has no default", table, col)
			}
		}
	}
	for table := range inserted {
		if !seen[table] {
			t.Errorf("no CREATE TABLE statement for %s", table)
		}
	}
}

// parseCreateTable returns the bare table name and the columns declared
// NOT NULL or PRIMARY KEY without a DEFAULT. Non-column constraint
// lines are skipped.
func parseCreateTable(stmt string) (string, []string) {
	lines := strings.Split(stmt, "\n")
	var table string
	var required []string
	for _, line := range lines {
		line = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(line), ","))
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "CREATE TABLE IF NOT EXISTS") {
			name := strings.Fields(line)[5]
			name = strings.TrimSuffix(name, "(")
			if i := strings.LastIndex(name, "."); i >= 0 {
				name = name[i+1:]
			}
			table = name
			continue
		}
		if table == "" {
			return "", nil
		}
		fields := strings.Fields(line)
		first := fields[0]
		switch first {
		case "PRIMARY", "UNIQUE", "CHECK", "FOREIGN", "CONSTRAINT", ")", ")`,":
			continue
		}
		if strings.ToUpper(first) != first {
			// column definition line
			if strings.Contains(line, "DEFAULT") {
				continue
			}
			if strings.Contains(line, "NOT NULL") || strings.Contains(line, "PRIMARY KEY") {
				required = append(required, first)
			}
		}
	}
	return table, required
}
