// SPDX-License-Identifier: Unlicense OR MIT

package gl

type (
	Buffer  struct{ V uint }
	Program struct{ V uint }
	Shader  struct{ V uint }
	Object  struct{ V uint }
)

func (b Buffer) Valid() bool {
	return b.V != 0
}

func (b Buffer) Equal(b2 Buffer) bool {
	return b == b2
}

func (p Program) Valid() bool {
	return p.V != 0
}

func (p Program) Equal(p2 Program) bool {
	return p == p2
}

func (s Shader) Valid() bool {
	return s.V != 0
}
