package core

/*------------------------------------------------------------------
 *
 * Purpose:	ASCII armoring for the hop across an opaque PHY that
 *		only accepts text (spec.md section 6).
 *
 * Description:	Standard base64 alphabet, with padding.  A
 *		byte-transparent transducer may skip this step entirely;
 *		Armor/Dearmor exist so the orchestrator doesn't need to
 *		know which kind of transducer it's driving.
 *
 *------------------------------------------------------------------*/

import "encoding/base64"

// Armor encodes wire frame bytes as ASCII text for the transducer.
func Armor(frame []byte) string {
	return base64.StdEncoding.EncodeToString(frame)
}

// Dearmor decodes ASCII text recovered from the transducer back into
// wire frame bytes.
func Dearmor(text string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(text)
}
