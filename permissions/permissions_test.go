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

package permissions_test

import (
	"github.com/nabbar/sanda/permissions"
	"github.com/nabbar/sanda/permissions/envkind"
	"github.com/nabbar/sanda/permissions/fskind"
	"github.com/nabbar/sanda/permissions/httpkind"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Builder", func() {
	It("builds an immutable Permissions from registered kinds", func() {
		p, err := permissions.NewBuilder().
			State(fskind.Root{Path: "/srv/app"}).
			AddWithAllow(fskind.New(), fskind.Read, []string{"data/*.json"}).
			AddWithAllow(httpkind.New(), httpkind.ReadRequest, []string{"/api/**"}).
			Add(envkind.New(), envkind.Access).
			Build()

		Expect(err).ToNot(HaveOccurred())
		Expect(p).ToNot(BeNil())
	})

	It("rejects a duplicate (kind, variant) registration", func() {
		_, err := permissions.NewBuilder().
			State(fskind.Root{Path: "/srv/app"}).
			AddWithAllow(fskind.New(), fskind.Read, []string{"*.json"}).
			AddWithAllow(fskind.New(), fskind.Read, []string{"*.json"}).
			Build()

		Expect(err).To(HaveOccurred())
	})

	It("rejects an allow-list pattern containing .. after cleaning", func() {
		_, err := permissions.NewBuilder().
			State(fskind.Root{Path: "/srv/app"}).
			AddWithAllow(fskind.New(), fskind.Read, []string{"../etc/passwd"}).
			Build()

		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Permissions.Check", func() {
	var p permissions.Permissions

	BeforeEach(func() {
		var err error
		p, err = permissions.NewBuilder().
			State(fskind.Root{Path: "/srv/app"}).
			AddWithAllow(fskind.New(), fskind.Read, []string{"data/*.json"}).
			AddWithAllow(httpkind.New(), httpkind.ReadRequest, []string{"/api/**"}).
			Add(envkind.New(), envkind.Access).
			Build()
		Expect(err).ToNot(HaveOccurred())
	})

	It("allows a resource matching the allow-list", func() {
		err := p.Check(fskind.ID, fskind.Read, "/srv/app/data/config.json")
		Expect(err).ToNot(HaveOccurred())
	})

	It("denies a resource outside the allow-list", func() {
		err := p.Check(fskind.ID, fskind.Read, "/srv/app/secrets/key.pem")
		Expect(err).To(HaveOccurred())
	})

	It("denies an unregistered (kind, variant) pair", func() {
		err := p.Check(fskind.ID, fskind.Write, "/srv/app/data/config.json")
		Expect(err).To(HaveOccurred())
	})

	It("matches ** across path separators for http-event patterns", func() {
		err := p.Check(httpkind.ID, httpkind.ReadRequest, "/api/v1/users/42")
		Expect(err).ToNot(HaveOccurred())
	})

	It("supports stateless toggle kinds via CheckExists", func() {
		Expect(p.CheckExists(envkind.ID, envkind.Access)).ToNot(HaveOccurred())
		Expect(p.CheckExists(envkind.ID, 99)).To(HaveOccurred())
	})
})
