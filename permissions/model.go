/*
 * MIT License
 *
 * Copyright (c) 2021 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package permissions

type builder struct {
	state   any
	entries map[Key][]string
	kinds   map[Key]Kind
	err     error
}

func (b *builder) State(s any) Builder {
	b.state = s
	return b
}

func (b *builder) Add(kind Kind, variant int) Builder {
	return b.AddWithAllow(kind, variant, nil)
}

func (b *builder) AddWithAllow(kind Kind, variant int, allow []string) Builder {
	if b.err != nil {
		return b
	}
	if kind == nil {
		b.err = ErrorParamsEmpty.Error()
		return b
	}

	k := Key{Kind: kind.ID(), Variant: variant}
	if _, ok := b.kinds[k]; ok {
		b.err = ErrorDuplicateKey.Errorf(kind.Name(), variant)
		return b
	}

	norm, err := kind.Normalize(variant, b.state, allow)
	if err != nil {
		b.err = err
		return b
	}

	b.kinds[k] = kind
	b.entries[k] = norm
	return b
}

func (b *builder) Build() (Permissions, error) {
	if b.err != nil {
		return nil, b.err
	}

	kinds := make(map[Key]Kind, len(b.kinds))
	entries := make(map[Key][]string, len(b.entries))
	for k, v := range b.kinds {
		kinds[k] = v
	}
	for k, v := range b.entries {
		allow := make([]string, len(v))
		copy(allow, v)
		entries[k] = allow
	}

	return &perms{
		state:   b.state,
		kinds:   kinds,
		entries: entries,
	}, nil
}

type perms struct {
	state   any
	kinds   map[Key]Kind
	entries map[Key][]string
}

func (p *perms) State() any {
	return p.state
}

func (p *perms) Check(kind KindID, variant int, resource string) error {
	k := Key{Kind: kind, Variant: variant}

	c, ok := p.kinds[k]
	if !ok {
		return ErrorUnknownKind.Errorf(kind, variant)
	}

	if err := c.Check(variant, resource, p.entries[k], p.state); err != nil {
		e := ErrorDenied.Errorf(c.Name(), resource)
		e.SetParent(err)
		return e
	}

	return nil
}

func (p *perms) CheckExists(kind KindID, variant int) error {
	k := Key{Kind: kind, Variant: variant}
	if _, ok := p.kinds[k]; !ok {
		return ErrorUnknownKind.Errorf(kind, variant)
	}
	return nil
}
