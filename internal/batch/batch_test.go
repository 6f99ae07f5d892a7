package batch_test

import (
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/fxmath/internal/batch"
	"github.com/san-kum/fxmath/internal/fixed"
	"github.com/san-kum/fxmath/internal/fxmath"
)

var _ = Describe("Plan", func() {
	It("has the 27 entries in order", func() {
		Expect(batch.Plan).To(HaveLen(27))
		Expect(batch.Plan[0].Name).To(Equal("sin_taylor"))
		Expect(batch.Plan[9].Name).To(Equal("sqrt"))
		Expect(batch.Plan[16].Name).To(Equal("log"))
		Expect(batch.Plan[17].Name).To(Equal("pow"))
		Expect(batch.Plan[26].Name).To(Equal("log2_cordic"))
	})

	It("evaluates pow through the Taylor logarithm", func() {
		Expect(batch.Plan[17].Op).To(Equal(fxmath.OpPow))
		Expect(batch.Plan[17].Strategy).To(Equal(fxmath.Taylor))
	})

	It("only names supported strategies", func() {
		for _, s := range batch.Plan {
			Expect(s.Op.Supports(s.Strategy)).To(BeTrue(), s.Name)
		}
	})
})

var _ = Describe("Run", func() {
	var opts batch.Options

	BeforeEach(func() {
		opts = batch.DefaultOptions()
	})

	Context("with an input inside every domain", func() {
		It("passes all entries in Q16_16", func() {
			r, err := batch.Run(context.Background(), 0.5, opts)
			Expect(err).NotTo(HaveOccurred())
			Expect(r.Entries).To(HaveLen(len(batch.Plan)))
			for i, e := range r.Entries {
				Expect(e.Index).To(Equal(i))
				Expect(e.Name).To(Equal(batch.Plan[i].Name))
				Expect(e.Err).NotTo(HaveOccurred(), e.Name)
				Expect(e.Diff).To(BeNumerically("<=", 0.01), e.Name)
			}
			Expect(r.Passed()).To(BeTrue())
			Expect(r.Format.Name).To(Equal("Q16_16"))
			Expect(r.Input).To(Equal(0.5))
		})

		It("gives the same report sequentially and in parallel", func() {
			seq := opts
			seq.Workers = 1
			a, err := batch.Run(context.Background(), 1.25, seq)
			Expect(err).NotTo(HaveOccurred())

			par := opts
			par.Workers = 8
			b, err := batch.Run(context.Background(), 1.25, par)
			Expect(err).NotTo(HaveOccurred())

			for i := range a.Entries {
				Expect(b.Entries[i].Value).To(Equal(a.Entries[i].Value))
				Expect(b.Entries[i].Exact).To(Equal(a.Entries[i].Exact))
			}
		})
	})

	Context("with a negative input", func() {
		It("reports domain errors where the reference is undefined", func() {
			r, err := batch.Run(context.Background(), -2, opts)
			Expect(err).NotTo(HaveOccurred())

			byName := map[string]batch.Entry{}
			for _, e := range r.Entries {
				byName[e.Name] = e
			}
			for _, name := range []string{"sqrt", "ln_lut", "ln_cordic", "log", "asin_cordic", "acos_cordic", "log2_lut", "log2_cordic"} {
				e := byName[name]
				Expect(errors.Is(e.Err, fixed.ErrDomain)).To(BeTrue(), name)
				Expect(e.Pass).To(BeTrue(), name)
			}
			Expect(byName["pow"].Value).To(BeNumerically("~", 1.0/9, 1e-3))
			Expect(byName["abs"].Value).To(Equal(2.0))
			Expect(r.Passed()).To(BeTrue())
		})
	})

	Context("at zero", func() {
		It("rejects the logarithms", func() {
			r, err := batch.Run(context.Background(), 0, opts)
			Expect(err).NotTo(HaveOccurred())
			Expect(errors.Is(r.Entries[14].Err, fixed.ErrDomain)).To(BeTrue())
			Expect(math.IsInf(r.Entries[14].Reference, -1)).To(BeTrue())
			Expect(r.Entries[24].Value).To(BeNumerically("~", math.Pi/2, 1e-3))
			Expect(r.Passed()).To(BeTrue())
		})
	})

	Context("in other formats", func() {
		DescribeTable("stays within the threshold",
			func(format string) {
				opts.Format = format
				r, err := batch.Run(context.Background(), 0.75, opts)
				Expect(err).NotTo(HaveOccurred())
				Expect(r.Passed()).To(BeTrue())
			},
			Entry("XS", "XS"),
			Entry("S", "S"),
			Entry("XL", "XL"),
		)

		It("rejects unknown formats", func() {
			opts.Format = "XXL"
			_, err := batch.Run(context.Background(), 1, opts)
			Expect(err).To(HaveOccurred())
		})
	})

	It("stops on a cancelled context", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := batch.Run(ctx, 1, opts)
		Expect(err).To(MatchError(context.Canceled))
	})

	It("runs several inputs", func() {
		reports, err := batch.RunInputs(context.Background(), []float64{0.1, 0.2, 0.3}, opts)
		Expect(err).NotTo(HaveOccurred())
		Expect(reports).To(HaveLen(3))
		Expect(reports[2].Input).To(BeNumerically("~", 0.3, 1e-4))
	})
})
