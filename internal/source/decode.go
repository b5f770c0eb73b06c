package source

import (
	"encoding/json"
	"io"

	"github.com/nikmy/adminui/internal/members"
	"github.com/nikmy/adminui/pkg/errors"
)

func decode(data []byte) ([]members.Record, error) {
	var records []members.Record
	err := json.Unmarshal(data, &records)
	if err != nil {
		return nil, errors.WrapFail(err, "parse members json")
	}
	return records, nil
}

func decodeReader(r io.Reader) ([]members.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.WrapFail(err, "read members json")
	}
	return decode(data)
}
