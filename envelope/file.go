package envelope

import (
	"encoding/binary"

	"golang.org/x/text/unicode/norm"
)

const (
	fileMagic         = "QRAMF"
	fileHeaderMinSize = len(fileMagic) + 2 // magic + name_len u16
)

// WrapFile prepends a QRAMF envelope to data: magic, a u16 BE name length,
// and the UTF-8 filename itself (spec §3, §4.7). The filename is
// Unicode-normalized to NFC first, so that two filenames that render
// identically but use different combining-character sequences produce the
// same wire bytes.
func WrapFile(name string, data []byte) ([]byte, error) {
	normalized := norm.NFC.String(name)
	nameBytes := []byte(normalized)
	if len(nameBytes) > 0xFFFF {
		return nil, ErrNameTooLong
	}

	out := make([]byte, fileHeaderMinSize+len(nameBytes)+len(data))
	copy(out[0:5], fileMagic)
	binary.BigEndian.PutUint16(out[5:7], uint16(len(nameBytes)))
	n := copy(out[7:], nameBytes)
	copy(out[7+n:], data)
	return out, nil
}

// UnwrapFile reverses WrapFile. If data does not begin with the QRAMF
// magic, or is truncated before the declared filename ends, it returns
// ok=false and the caller treats the payload as plain bytes (spec §4.7,
// §7's NotAFileEnvelope).
func UnwrapFile(data []byte) (name string, body []byte, ok bool) {
	if len(data) < fileHeaderMinSize || string(data[0:5]) != fileMagic {
		return "", nil, false
	}
	nameLen := int(binary.BigEndian.Uint16(data[5:7]))
	if fileHeaderMinSize+nameLen > len(data) {
		return "", nil, false
	}
	name = string(data[7 : 7+nameLen])
	body = data[7+nameLen:]
	return name, body, true
}
