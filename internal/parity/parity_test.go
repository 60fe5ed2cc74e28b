package parity_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/nepplot/internal/dataset"
	"github.com/san-kum/nepplot/internal/metrics"
	"github.com/san-kum/nepplot/internal/parity"
	"github.com/san-kum/nepplot/internal/table"
)

var _ = Describe("Build", func() {
	var ds *dataset.Dataset

	BeforeEach(func() {
		ds = &dataset.Dataset{
			Energy: table.Table{{1.0, 1.1}, {2.0, 1.9}},
			Force: table.Table{
				{0.1, -0.2, 0.3, 0.1, -0.2, 0.3},
				{1.5, 0.0, -1.5, 1.5, 0.0, -1.5},
			},
			Stress: table.Table{
				{1, 2, 3, 4, 5, 6, 1, 2, 3, 4, 5, 6},
				{0, 0, 0, 0, 0, 0, 0.5, 0, 0, 0, 0, 0},
			},
		}
	})

	It("returns energy, force and stress panels in order", func() {
		panels := parity.Build(ds, metrics.DefaultPadding)
		Expect(panels).To(HaveLen(3))
		Expect(panels[0].Letter).To(Equal("(a)"))
		Expect(panels[1].Letter).To(Equal("(b)"))
		Expect(panels[2].Letter).To(Equal("(c)"))
		Expect(panels[0].Name).To(Equal("energy"))
		Expect(panels[2].Name).To(Equal("stress"))
	})

	It("reports energy RMSE in meV/atom", func() {
		energy := parity.Build(ds, metrics.DefaultPadding)[0]
		Expect(energy.RMSE).To(BeNumerically("~", 100.0, 1e-9))
		Expect(energy.Annotation).To(Equal("RMSE: 100.00 meV/atom"))
		Expect(energy.XLabel).To(Equal("DFT energy (eV/atom)"))
		Expect(energy.YLabel).To(Equal("NEP energy (eV/atom)"))
	})

	It("plots reference on X and prediction on Y", func() {
		energy := parity.Build(ds, metrics.DefaultPadding)[0]
		Expect(energy.Series).To(HaveLen(1))
		Expect(energy.Series[0].X).To(Equal([]float64{1.1, 1.9}))
		Expect(energy.Series[0].Y).To(Equal([]float64{1.0, 2.0}))
	})

	It("reports a zero force RMSE when predictions match", func() {
		force := parity.Build(ds, metrics.DefaultPadding)[1]
		Expect(force.RMSE).To(Equal(0.0))
		Expect(force.Annotation).To(Equal("RMSE: 0.00 meV/Å"))
		Expect(force.Series).To(HaveLen(3))
		Expect(force.Series[2].Name).To(Equal("fz"))
	})

	It("reports stress RMSE in GPa with four decimals", func() {
		stress := parity.Build(ds, metrics.DefaultPadding)[2]
		Expect(stress.Series).To(HaveLen(6))
		Expect(stress.RMSE).To(BeNumerically("~", math.Sqrt(0.125)/6, 1e-12))
		Expect(stress.Annotation).To(Equal("RMSE: 0.0589 GPa"))
	})

	It("derives square limits from the reference columns only", func() {
		force := parity.Build(ds, 0)[1]
		Expect(force.Lo).To(Equal(-1.5))
		Expect(force.Hi).To(Equal(1.5))

		ds.Energy = table.Table{{100, 1}, {-100, 3}}
		energy := parity.Build(ds, 0.5)[0]
		Expect(energy.Lo).To(Equal(0.0))
		Expect(energy.Hi).To(Equal(4.0))
	})

	Context("when every stress row was filtered out", func() {
		BeforeEach(func() {
			ds.Stress = table.Table{}
			ds.Dropped = 2
		})

		It("propagates NaN instead of inventing a value", func() {
			stress := parity.Build(ds, metrics.DefaultPadding)[2]
			Expect(math.IsNaN(stress.RMSE)).To(BeTrue())
			Expect(math.IsNaN(stress.Lo)).To(BeTrue())
			Expect(math.IsNaN(stress.Hi)).To(BeTrue())
			Expect(stress.Annotation).To(Equal("RMSE: NaN GPa"))
		})
	})
})

var _ = Describe("Summarize", func() {
	It("breaks RMSE down per component in display units", func() {
		ds := &dataset.Dataset{
			Energy:  table.Table{{1.0, 1.1}, {2.0, 1.9}},
			Force:   table.Table{{0.01, 0, 0, 0, 0, 0}},
			Stress:  table.Table{{0, 0, 0, 0, 0, 0.2, 0, 0, 0, 0, 0, 0}},
			Dropped: 4,
		}

		s := parity.Summarize(ds)
		Expect(s.Dropped).To(Equal(4))
		Expect(s.Energy.Rows).To(Equal(2))
		Expect(s.Energy.Mean).To(BeNumerically("~", 100.0, 1e-9))
		Expect(s.Energy.Unit).To(Equal("meV/atom"))

		Expect(s.Force.Components).To(HaveKeyWithValue("fx", BeNumerically("~", 10.0, 1e-9)))
		Expect(s.Force.Components).To(HaveKeyWithValue("fy", 0.0))
		Expect(s.Force.Mean).To(BeNumerically("~", 10.0/3, 1e-9))

		Expect(s.Stress.Components).To(HaveKeyWithValue("zx", BeNumerically("~", 0.2, 1e-12)))
		Expect(s.Stress.Order).To(Equal([]string{"xx", "yy", "zz", "xy", "yz", "zx"}))
		Expect(s.Quantities()).To(HaveLen(3))
	})
})
