package core

/*------------------------------------------------------------------
 *
 * Purpose:	C2 fragmenter / reassembler.
 *
 * Description:	Splits an arbitrary payload into ordered DATA frames
 *		no larger than maxPayload bytes each, and rebuilds a
 *		payload from a partial seq->bytes map once every
 *		fragment has arrived.
 *
 *------------------------------------------------------------------*/

// Fragment produces the wire bytes for every DATA frame of one logical
// message. Always yields at least one frame, even for an empty payload.
func Fragment(payload []byte, msgID uint16, maxPayload int) ([][]byte, error) {
	if maxPayload <= 0 {
		return nil, ErrInvalidArg
	}

	total := fragmentCount(len(payload), maxPayload)

	frames := make([][]byte, 0, total)
	for seq := 0; seq < total; seq++ {
		start := seq * maxPayload
		end := start + maxPayload
		if end > len(payload) {
			end = len(payload)
		}

		raw, err := Encode(TypeData, msgID, uint16(seq), uint16(total), payload[start:end])
		if err != nil {
			return nil, err
		}
		frames = append(frames, raw)
	}

	return frames, nil
}

func fragmentCount(payloadLen, maxPayload int) int {
	total := (payloadLen + maxPayload - 1) / maxPayload
	if total == 0 {
		total = 1
	}
	return total
}

// Reassemble concatenates a seq->payload map in order. Returns
// (nil, false) if any key in [0, total) is missing.
func Reassemble(parts map[uint16][]byte, total uint16) ([]byte, bool) {
	out := make([]byte, 0, len(parts))
	for seq := uint16(0); seq < total; seq++ {
		part, ok := parts[seq]
		if !ok {
			return nil, false
		}
		out = append(out, part...)
	}
	return out, true
}
