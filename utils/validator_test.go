package utils

import "testing"

type sampleRequest struct {
	Objective  string `validate:"required,maxlen=10"`
	Name       string `validate:"nameok"`
	InviteCode string `validate:"code6"`
}

func TestValidateStruct(t *testing.T) {
	ok := sampleRequest{Objective: "run 5k", Name: "Asha", InviteCode: "A1B2C3"}
	if err := ValidateStruct(&ok); err != nil {
		t.Fatalf("valid struct rejected: %v", err)
	}

	missing := ok
	missing.Objective = "   "
	if err := ValidateStruct(&missing); err == nil {
		t.Fatal("blank required field accepted")
	}

	long := ok
	long.Objective = "this objective is far too long"
	if err := ValidateStruct(&long); err == nil {
		t.Fatal("over-length field accepted")
	}

	badCode := ok
	badCode.InviteCode = "abc123"
	if err := ValidateStruct(&badCode); err == nil {
		t.Fatal("lower-case invite code accepted")
	}
}

func TestValidateStruct_NumericRequired(t *testing.T) {
	type stakeRequest struct {
		Stake     int64 `validate:"required"`
		CharityID uint  `validate:"required"`
	}

	ok := stakeRequest{Stake: 25, CharityID: 3}
	if err := ValidateStruct(&ok); err != nil {
		t.Fatalf("valid struct rejected: %v", err)
	}

	zeroStake := stakeRequest{Stake: 0, CharityID: 3}
	if err := ValidateStruct(&zeroStake); err == nil {
		t.Fatal("zero stake accepted by required")
	}

	zeroID := stakeRequest{Stake: 25, CharityID: 0}
	if err := ValidateStruct(&zeroID); err == nil {
		t.Fatal("zero charity id accepted by required")
	}
}
