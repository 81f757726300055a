package payroll

import (
	"fmt"

	"github.com/goccy/go-json"

	"hrpay/internal/domain/attendance"
)

// Sealer encrypts snapshots at rest. *crypto.Service satisfies it.
type Sealer interface {
	Encrypt(plain []byte) ([]byte, error)
	Decrypt(ciphertext []byte) ([]byte, error)
}

// snapshot is the part of a record frozen at generation time.
type snapshot struct {
	Profile    Profile                  `json:"profile"`
	Attendance attendance.MonthlyTotals `json:"attendance"`
	Salary     Salary                   `json:"salary"`
}

// EncodeSnapshot serializes the generation-time inputs and results of a
// record. A nil sealer stores plain JSON.
func EncodeSnapshot(record Record, sealer Sealer) ([]byte, error) {
	raw, err := json.Marshal(snapshot{Profile: record.Profile, Attendance: record.Attendance, Salary: record.Salary})
	if err != nil {
		return nil, fmt.Errorf("encode payroll snapshot: %w", err)
	}
	if sealer == nil {
		return raw, nil
	}
	return sealer.Encrypt(raw)
}

// DecodeSnapshot restores the fields written by EncodeSnapshot into record.
func DecodeSnapshot(data []byte, sealer Sealer, record *Record) error {
	if sealer != nil {
		plain, err := sealer.Decrypt(data)
		if err != nil {
			return fmt.Errorf("decrypt payroll snapshot %s: %w", record.ID, err)
		}
		data = plain
	}
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("decode payroll snapshot %s: %w", record.ID, err)
	}
	record.Profile = snap.Profile
	record.Attendance = snap.Attendance
	record.Salary = snap.Salary
	return nil
}
