package nativestorage

import (
	"encoding"
	"fmt"
)

func marshalData(v any) (string, error) {
	switch v := v.(type) {
	case string:
		return v, nil

	case []byte:
		return string(v), nil

	case encoding.TextMarshaler:
		b, err := v.MarshalText()
		if err != nil {
			return "", err //nolint: wrapcheck
		}

		return string(b), nil
	}

	return "", fmt.Errorf("%w: %T", ErrUnsupportedType, v)
}

func unmarshalData(v string, dest any) error {
	switch dest := dest.(type) {
	case *string:
		*dest = v

	case *[]byte:
		*dest = []byte(v)

	case *any:
		*dest = v

	case encoding.TextUnmarshaler:
		return dest.UnmarshalText([]byte(v)) //nolint: wrapcheck

	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, dest)
	}

	return nil
}
