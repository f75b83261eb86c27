package estimator

import (
	"fmt"
)

// Op is a ciphertext operation.
type Op int

const (
	OpFresh = Op(iota)
	OpAdd
	OpMul
	OpRelinearize
	OpModSwitch
)

var opNames = [...]string{
	OpFresh:       "fresh",
	OpAdd:         "add",
	OpMul:         "mult",
	OpRelinearize: "relin",
	OpModSwitch:   "mod_switch",
}

func (op Op) String() string {
	if op < 0 || int(op) >= len(opNames) {
		return fmt.Sprintf("Op(%d)", int(op))
	}
	return opNames[op]
}
