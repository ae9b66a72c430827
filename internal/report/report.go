// Package report turns the joined gradebook into a short text summary of
// class performance.
package report

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"gradebook/internal/gradebook"
)

// Input is the data a report is built from.
type Input struct {
	Students []gradebook.StudentGrades `json:"students"`
	Subjects []gradebook.Subject       `json:"subjects"`
}

type studentAverage struct {
	name string
	avg  float64
}

// Generate renders the grade analysis for in. Students without grades are
// ignored by every average-based figure but still count towards the total.
func Generate(in Input) string {
	var (
		averages []studentAverage
		atRisk   []studentAverage
		all      []float64
	)
	for _, st := range in.Students {
		for _, g := range st.Grades {
			all = append(all, g.Grade)
		}
		if len(st.Grades) == 0 {
			continue
		}
		sa := studentAverage{name: st.Name, avg: averageOf(st.Grades)}
		averages = append(averages, sa)
		if sa.avg < gradebook.PassingGrade {
			atRisk = append(atRisk, sa)
		}
	}

	var lowest, highest *studentAverage
	for i := range averages {
		if lowest == nil || averages[i].avg < lowest.avg {
			lowest = &averages[i]
		}
		if highest == nil || averages[i].avg > highest.avg {
			highest = &averages[i]
		}
	}

	classAvg := "N/A"
	if len(all) > 0 {
		classAvg = oneDecimal(mean(all))
	}

	var b strings.Builder
	b.WriteString("# Grade Analysis Summary\n\n")

	b.WriteString("## Overall Performance\n")
	fmt.Fprintf(&b, "- Class average: %s%%\n", classAvg)
	fmt.Fprintf(&b, "- Total students: %d\n", len(in.Students))
	fmt.Fprintf(&b, "- Students at risk of failing: %d\n\n", len(atRisk))

	b.WriteString("## Key Insights\n")
	if lowest != nil {
		fmt.Fprintf(&b, "- %s has the lowest average grade (%s%%) and needs additional support.\n", lowest.name, oneDecimal(lowest.avg))
	}
	if highest != nil {
		fmt.Fprintf(&b, "- %s has the highest average grade (%s%%) and is excelling in their studies.\n", highest.name, oneDecimal(highest.avg))
	}
	if len(atRisk) > 0 {
		fmt.Fprintf(&b, "- %d student(s) are at risk of failing and require intervention:\n", len(atRisk))
		for _, sa := range atRisk {
			fmt.Fprintf(&b, "  * %s (Average: %s%%)\n", sa.name, oneDecimal(sa.avg))
		}
	} else {
		fmt.Fprintf(&b, "- All students are currently passing with grades above %d%%.\n", gradebook.PassingGrade)
	}

	b.WriteString("\n## Subject-Specific Insights\n")
	for _, sub := range in.Subjects {
		var grades []float64
		for _, st := range in.Students {
			for _, g := range st.Grades {
				if g.SubjectID == sub.ID {
					grades = append(grades, g.Grade)
				}
			}
		}
		if len(grades) > 0 {
			fmt.Fprintf(&b, "- %s: Average grade is %s%%\n", sub.Name, oneDecimal(mean(grades)))
		}
	}

	b.WriteString("\n## Recommendations\n")
	if len(atRisk) > 0 {
		b.WriteString("- Schedule additional tutoring sessions for students at risk of failing.\n")
		b.WriteString("- Consider parent-teacher conferences for students with consistently low performance.\n")
	}
	b.WriteString("- Continue to monitor student progress and provide timely feedback.\n")
	b.WriteString("- Recognize and reward high-performing students to maintain motivation.\n")

	return b.String()
}

func averageOf(grades []gradebook.SubjectGrade) float64 {
	var sum float64
	for _, g := range grades {
		sum += g.Grade
	}
	return sum / float64(len(grades))
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// oneDecimal formats v with one decimal. Rounding works on the exact binary
// value of v, so 2.55 (stored as 2.5499...) prints 2.5; exact halves such as
// 75.25 round away from zero.
func oneDecimal(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}

	r := new(big.Rat).SetFloat64(math.Abs(v))
	r.Mul(r, big.NewRat(10, 1))
	r.Add(r, big.NewRat(1, 2))
	tenths := new(big.Int).Quo(r.Num(), r.Denom())

	whole, frac := new(big.Int).QuoRem(tenths, big.NewInt(10), new(big.Int))
	sign := ""
	if v < 0 {
		sign = "-"
	}
	return sign + whole.String() + "." + frac.String()
}
