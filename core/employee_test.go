package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveEmployee(t *testing.T) {
	db := openTestDB(t)
	loc := seedLocation(t, db, "Warehouse")
	seedEmployee(t, db, 42, "Alice Smith", "alice", loc.ID)
	seedEmployee(t, db, 7, "Badge Seven", "1007", loc.ID)
	seedEmployee(t, db, 1007, "Ida Collision", "ida", loc.ID)

	tests := []struct {
		name       string
		input      string
		expectedID int64
		expectErr  error
	}{
		{
			name:       "Exact identifier",
			input:      "alice",
			expectedID: 42,
		},
		{
			name:       "Identifier is case-insensitive",
			input:      "ALICE",
			expectedID: 42,
		},
		{
			name:       "Identifier is trimmed",
			input:      "  alice  ",
			expectedID: 42,
		},
		{
			name:       "Digits match identifier before numeric id",
			input:      "1007",
			expectedID: 7,
		},
		{
			name:       "Digits fall back to numeric id",
			input:      "42",
			expectedID: 42,
		},
		{
			name:      "Empty input",
			input:     "   ",
			expectErr: ErrInvalidInput,
		},
		{
			name:      "Unknown identifier",
			input:     "bob",
			expectErr: ErrEmployeeNotFound,
		},
		{
			name:      "Unknown numeric id",
			input:     "99999",
			expectErr: ErrEmployeeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emp, err := ResolveEmployee(db, tt.input)
			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedID, emp.ID)
		})
	}
}

func TestCreateEmployeeRejectsDuplicateIdentifier(t *testing.T) {
	db := openTestDB(t)
	loc := seedLocation(t, db, "Warehouse")
	seedEmployee(t, db, 1, "Alice Smith", "alice", loc.ID)

	err := CreateEmployee(db, &Employee{ID: 2, Name: "Impostor", Identifier: "ALICE", LocationID: loc.ID})
	assert.Error(t, err)
}

func TestDeleteEmployeeCascades(t *testing.T) {
	db := openTestDB(t)
	loc := seedLocation(t, db, "Warehouse")
	emp := seedEmployee(t, db, 1, "Alice Smith", "alice", loc.ID)

	_, err := CreateWorkRecord(db, emp, 1_000_000, 2_000_000)
	assert.NoError(t, err)

	assert.NoError(t, DeleteEmployee(db, 1))

	gone, err := FindEmployeeByID(db, 1)
	assert.NoError(t, err)
	assert.Nil(t, gone)

	var count int64
	assert.NoError(t, db.Model(&WorkRecord{}).Where("employee_id = ?", 1).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestDeleteLocationCascades(t *testing.T) {
	db := openTestDB(t)
	loc := seedLocation(t, db, "Warehouse")
	emp := seedEmployee(t, db, 1, "Alice Smith", "alice", loc.ID)

	_, err := CreateWorkRecord(db, emp, 1_000_000, 2_000_000)
	assert.NoError(t, err)

	assert.NoError(t, DeleteLocation(db, loc.ID))

	goneLoc, err := FindLocationByID(db, loc.ID)
	assert.NoError(t, err)
	assert.Nil(t, goneLoc)

	goneEmp, err := FindEmployeeByID(db, 1)
	assert.NoError(t, err)
	assert.Nil(t, goneEmp)

	var count int64
	assert.NoError(t, db.Model(&WorkRecord{}).Where("location_id = ?", loc.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}
