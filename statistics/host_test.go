package statistics

import (
	"bytes"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = Describe("Host", func() {
	var (
		buf  *bytes.Buffer
		host *Host
	)

	BeforeEach(func() {
		buf = new(bytes.Buffer)
		host = MakeHostBuilder().WithWriter(buf).Build()
	})

	It("should start with statistics disabled and console output", func() {
		Expect(host.StatisticLoadLevel()).To(Equal(0))
		Expect(host.StatisticOutput()).To(Equal(ConsoleOutput))
	})

	It("should set the load level", func() {
		Expect(host.SetStatisticLoadLevel(5)).To(Succeed())
		Expect(host.StatisticLoadLevel()).To(Equal(5))
	})

	It("should reject out-of-range load levels", func() {
		err := host.SetStatisticLoadLevel(MaxLoadLevel + 1)
		Expect(errors.Is(err, ErrInvalidLoadLevel)).To(BeTrue())

		err = host.SetStatisticLoadLevel(-1)
		Expect(errors.Is(err, ErrInvalidLoadLevel)).To(BeTrue())

		Expect(host.StatisticLoadLevel()).To(Equal(0))
	})

	It("should select a known output", func() {
		Expect(host.SetStatisticOutput(CSVOutput)).To(Succeed())
		Expect(host.StatisticOutput()).To(Equal(CSVOutput))
	})

	It("should reject unknown outputs", func() {
		err := host.SetStatisticOutput("hdf5")

		Expect(errors.Is(err, ErrUnknownOutput)).To(BeTrue())
		Expect(host.StatisticOutput()).To(Equal(ConsoleOutput))
	})

	It("should list outputs in order", func() {
		Expect(host.OutputNames()).To(Equal(
			[]string{ConsoleOutput, CSVOutput, SQLiteOutput}))
	})

	It("should enable statistics up to the load level", func() {
		Expect(host.SetStatisticLoadLevel(5)).To(Succeed())

		low := host.RegisterStatistic("cpu", "cycles", 1)
		edge := host.RegisterStatistic("cpu", "stalls", 5)
		high := host.RegisterStatistic("cpu", "bubbles", 6)
		zero := host.RegisterStatistic("cpu", "nothing", 0)

		Expect(low.Enabled()).To(BeTrue())
		Expect(edge.Enabled()).To(BeTrue())
		Expect(high.Enabled()).To(BeFalse())
		Expect(zero.Enabled()).To(BeFalse())
		Expect(host.Statistics()).To(HaveLen(4))
	})

	It("should print nothing when no statistic is registered", func() {
		Expect(host.Close()).To(Succeed())
		Expect(buf.String()).To(BeEmpty())
	})

	It("should print enabled statistics to the console on close", func() {
		Expect(host.SetStatisticLoadLevel(2)).To(Succeed())
		s := host.RegisterStatistic("mem", "reads", 1)
		host.RegisterStatistic("mem", "writes", 3).AddData(1)
		s.AddData(2)
		s.AddData(4)

		Expect(host.Close()).To(Succeed())

		Expect(buf.String()).To(Equal(
			"mem.reads : Count = 2; Sum = 6; Min = 2; Max = 4\n"))
	})

	It("should only close once", func() {
		Expect(host.SetStatisticLoadLevel(1)).To(Succeed())
		host.RegisterStatistic("mem", "reads", 1).AddData(1)

		Expect(host.Close()).To(Succeed())
		Expect(host.Close()).To(Succeed())

		Expect(buf.String()).To(Equal(
			"mem.reads : Count = 1; Sum = 1; Min = 1; Max = 1\n"))
	})

	It("should panic when registering on a closed host", func() {
		Expect(host.Close()).To(Succeed())

		Expect(func() {
			host.RegisterStatistic("mem", "reads", 1)
		}).To(Panic())
	})

	It("should panic when built with an unknown output", func() {
		Expect(func() {
			MakeHostBuilder().WithOutput("hdf5").Build()
		}).To(Panic())
	})

	Context("with a registered output", func() {
		var (
			mockCtrl *gomock.Controller
			output   *MockOutput
		)

		BeforeEach(func() {
			mockCtrl = gomock.NewController(GinkgoT())
			output = NewMockOutput(mockCtrl)

			host.RegisterOutput("mock", func(OutputOptions) Output {
				return output
			})
			Expect(host.SetStatisticOutput("mock")).To(Succeed())
			Expect(host.SetStatisticLoadLevel(1)).To(Succeed())
		})

		AfterEach(func() {
			mockCtrl.Finish()
		})

		It("should init, write, flush and close in order", func() {
			s := host.RegisterStatistic("cpu", "cycles", 1)
			s.AddData(7)
			host.RegisterStatistic("cpu", "stalls", 2)

			gomock.InOrder(
				output.EXPECT().Init().Return(nil),
				output.EXPECT().Write(Record{
					ID:        s.ID,
					Component: "cpu",
					Name:      "cycles",
					Count:     1,
					Sum:       7,
					Min:       7,
					Max:       7,
				}),
				output.EXPECT().Flush().Return(nil),
				output.EXPECT().Close().Return(nil),
			)

			Expect(host.Close()).To(Succeed())
		})

		It("should return init errors", func() {
			failure := errors.New("no space")
			output.EXPECT().Init().Return(failure)

			err := host.Close()

			Expect(errors.Is(err, failure)).To(BeTrue())
		})

		It("should close the output when flushing fails", func() {
			failure := errors.New("disk gone")
			output.EXPECT().Init().Return(nil)
			output.EXPECT().Flush().Return(failure)
			output.EXPECT().Close().Return(nil)

			err := host.Close()

			Expect(errors.Is(err, failure)).To(BeTrue())
		})
	})
})
