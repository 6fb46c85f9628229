package dto_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/hrms-api/internal/domain"
	"github.com/hrms-api/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, time.October, 17, 15, 4, 5, 0, time.UTC)

func newValidator() *dto.Validator {
	return dto.NewValidatorWithClock(func() time.Time { return fixedNow })
}

func validCreate() *dto.CreateEmployeeRequest {
	return &dto.CreateEmployeeRequest{
		EmployeeID: "EMP-001",
		FullName:   "Jane Doe",
		Email:      "jane.doe@example.com",
		Department: "Engineering",
	}
}

func validUpdate() *dto.UpdateEmployeeRequest {
	return &dto.UpdateEmployeeRequest{
		FullName:      "Jane Doe",
		Email:         "jane.doe@example.com",
		Department:    "Engineering",
		DateOfJoining: "2024-02-29",
	}
}

func strPtr(s string) *string {
	return &s
}

// fieldRules возвращает сработавшие правила по именам полей
func fieldRules(t *testing.T, err error) map[string]string {
	t.Helper()

	var verr *dto.ValidationError
	require.ErrorAs(t, err, &verr)
	rules := make(map[string]string, len(verr.Fields))
	for _, f := range verr.Fields {
		rules[f.Field] = f.Rule
	}
	return rules
}

func TestValidateCreate_Valid(t *testing.T) {
	req := validCreate()
	req.DateOfJoining = strPtr("2023-01-15")

	require.NoError(t, newValidator().ValidateCreate(req))
	assert.Equal(t, "2023-01-15", *req.DateOfJoining)
}

func TestValidateCreate_DefaultsDateOfJoining(t *testing.T) {
	req := validCreate()

	require.NoError(t, newValidator().ValidateCreate(req))
	require.NotNil(t, req.DateOfJoining)
	assert.Equal(t, "2026-10-17", *req.DateOfJoining)
}

func TestValidateCreate_EmployeeIDLength(t *testing.T) {
	tests := []struct {
		name  string
		value string
		ok    bool
	}{
		{name: "empty", value: "", ok: false},
		{name: "one char", value: "E", ok: true},
		{name: "fifty chars", value: strings.Repeat("E", 50), ok: true},
		{name: "fifty one chars", value: strings.Repeat("E", 51), ok: false},
		{name: "fifty multibyte runes", value: strings.Repeat("ж", 50), ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreate()
			req.EmployeeID = tt.value

			err := newValidator().ValidateCreate(req)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Contains(t, fieldRules(t, err), "employee_id")
		})
	}
}

func TestValidateCreate_FullNameAndDepartmentLength(t *testing.T) {
	tests := []struct {
		name       string
		fullName   string
		department string
		failed     []string
	}{
		{name: "upper bounds", fullName: strings.Repeat("a", 200), department: strings.Repeat("d", 100)},
		{name: "lower bounds", fullName: "a", department: "d"},
		{name: "full name too long", fullName: strings.Repeat("a", 201), department: "d", failed: []string{"full_name"}},
		{name: "department too long", fullName: "a", department: strings.Repeat("d", 101), failed: []string{"department"}},
		{name: "both empty", fullName: "", department: "", failed: []string{"full_name", "department"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreate()
			req.FullName = tt.fullName
			req.Department = tt.department

			err := newValidator().ValidateCreate(req)
			if len(tt.failed) == 0 {
				assert.NoError(t, err)
				return
			}
			rules := fieldRules(t, err)
			assert.Len(t, rules, len(tt.failed))
			for _, field := range tt.failed {
				assert.Contains(t, rules, field)
			}
		})
	}
}

func TestValidate_Email(t *testing.T) {
	tests := []struct {
		email string
		ok    bool
	}{
		{email: "jane.doe@example.com", ok: true},
		{email: "j+hr@sub.example.org", ok: true},
		{email: "", ok: false},
		{email: "plainaddress", ok: false},
		{email: "jane@", ok: false},
		{email: "@example.com", ok: false},
		{email: "jane doe@example.com", ok: false},
	}

	v := newValidator()
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			create := validCreate()
			create.Email = tt.email
			update := validUpdate()
			update.Email = tt.email

			if tt.ok {
				assert.NoError(t, v.ValidateCreate(create))
				assert.NoError(t, v.ValidateUpdate(update))
				return
			}
			assert.Contains(t, fieldRules(t, v.ValidateCreate(create)), "email")
			assert.Contains(t, fieldRules(t, v.ValidateUpdate(update)), "email")
		})
	}
}

func TestValidateCreate_BadDate(t *testing.T) {
	for _, value := range []string{"", "17/10/2026", "2026-02-30", "2026-10-17T00:00:00Z"} {
		req := validCreate()
		req.DateOfJoining = strPtr(value)

		rules := fieldRules(t, newValidator().ValidateCreate(req))
		assert.Equal(t, "datetime", rules["date_of_joining"], value)
	}
}

func TestValidateUpdate_Valid(t *testing.T) {
	assert.NoError(t, newValidator().ValidateUpdate(validUpdate()))
}

func TestValidateUpdate_DateOfJoiningRequired(t *testing.T) {
	req := validUpdate()
	req.DateOfJoining = ""

	rules := fieldRules(t, newValidator().ValidateUpdate(req))
	assert.Equal(t, map[string]string{"date_of_joining": "required"}, rules)
}

func TestValidateUpdate_LengthBounds(t *testing.T) {
	req := validUpdate()
	req.FullName = strings.Repeat("a", 201)
	req.Department = strings.Repeat("d", 101)

	rules := fieldRules(t, newValidator().ValidateUpdate(req))
	assert.Equal(t, "max", rules["full_name"])
	assert.Equal(t, "max", rules["department"])
}

func TestDecode_UpdateIgnoresEmployeeID(t *testing.T) {
	body := `{
		"employee_id": "EMP-999",
		"full_name": "Jane Roe",
		"email": "jane.roe@example.com",
		"department": "Finance",
		"date_of_joining": "2025-06-01"
	}`

	req, err := dto.Decode[dto.UpdateEmployeeRequest](strings.NewReader(body))
	require.NoError(t, err)
	require.NoError(t, newValidator().ValidateUpdate(req))
	assert.Equal(t, "Jane Roe", req.FullName)
}

func TestDecode_CreateWithoutDate(t *testing.T) {
	body := `{"employee_id":"EMP-2","full_name":"Ann","email":"ann@example.com","department":"HR"}`

	req, err := dto.Decode[dto.CreateEmployeeRequest](strings.NewReader(body))
	require.NoError(t, err)
	assert.Nil(t, req.DateOfJoining)

	require.NoError(t, newValidator().ValidateCreate(req))
	assert.Equal(t, "2026-10-17", *req.DateOfJoining)
}

func TestDecode_CreateNullDateDefaulted(t *testing.T) {
	body := `{"employee_id":"EMP-3","full_name":"Ann","email":"ann@example.com","department":"HR","date_of_joining":null}`

	req, err := dto.Decode[dto.CreateEmployeeRequest](strings.NewReader(body))
	require.NoError(t, err)
	assert.Nil(t, req.DateOfJoining)

	require.NoError(t, newValidator().ValidateCreate(req))
	assert.Equal(t, "2026-10-17", *req.DateOfJoining)
}

func TestDecode_MalformedBody(t *testing.T) {
	_, err := dto.Decode[dto.CreateEmployeeRequest](strings.NewReader(`{"employee_id":`))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestValidationError_Response(t *testing.T) {
	req := validCreate()
	req.Email = "nope"

	err := newValidator().ValidateCreate(req)
	var verr *dto.ValidationError
	require.True(t, errors.As(err, &verr))

	resp := verr.Response()
	assert.Equal(t, "validation error", resp.Detail)
	assert.Equal(t, map[string]string{"email": "must be a valid email address"}, resp.Fields)
	assert.Equal(t, "validation error: email: must be a valid email address", err.Error())
}

func TestNewEmployeeResponse(t *testing.T) {
	emp := &domain.Employee{
		ID:            7,
		EmployeeID:    "EMP-007",
		FullName:      "James Bond",
		Email:         "jb@example.com",
		Department:    "Field Ops",
		DateOfJoining: time.Date(2021, time.March, 4, 0, 0, 0, 0, time.UTC),
		CreatedAt:     fixedNow,
		UpdatedAt:     fixedNow,
	}

	resp := dto.NewEmployeeResponse(emp)
	assert.Equal(t, dto.EmployeeResponse{
		ID:            7,
		EmployeeID:    "EMP-007",
		FullName:      "James Bond",
		Email:         "jb@example.com",
		Department:    "Field Ops",
		DateOfJoining: "2021-03-04",
	}, resp)

	data, err := json.Marshal(resp)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.ElementsMatch(t,
		[]string{"id", "employee_id", "full_name", "email", "department", "date_of_joining"},
		keys(fields),
	)
}

func TestNewEmployeeResponse_AlwaysHasID(t *testing.T) {
	data, err := json.Marshal(dto.NewEmployeeResponse(&domain.Employee{}))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"id":0`)
}

func TestNewEmployeeResponses(t *testing.T) {
	resp := dto.NewEmployeeResponses([]domain.Employee{{ID: 1}, {ID: 2}})
	require.Len(t, resp, 2)
	assert.Equal(t, int64(2), resp[1].ID)
	assert.Empty(t, dto.NewEmployeeResponses(nil))
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
