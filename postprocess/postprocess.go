// Package postprocess drives the validation and repair pipeline applied to
// TS documents after a Transifex pull: specifier checking, best-effort
// repair, the payment-address content policy, pruning of unfinished
// messages, and discarding of near-empty documents.
package postprocess

import (
	"fmt"
	"path/filepath"

	"github.com/minios-linux/tskit/specifier"
	"github.com/minios-linux/tskit/tsfile"
)

// Result accumulates run-wide counters across documents. A single Result
// is carried through the whole run; nothing here is ambient state.
type Result struct {
	// Fixed counts translations repaired in place.
	Fixed int
	// Removed counts documents discarded for falling below the threshold.
	Removed int
	// HadErrors is set when at least one translation was irreparable and
	// had to be cleared.
	HadErrors bool
}

// Processor runs the pipeline over documents, accumulating counters.
type Processor struct {
	// MinMessages is the survival threshold: documents with fewer messages
	// after pruning are discarded entirely.
	MinMessages int
	// Logf receives per-message findings and progress lines.
	Logf func(format string, args ...any)

	Result Result
}

// New returns a Processor. logf may be nil to silence findings.
func New(minMessages int, logf func(format string, args ...any)) *Processor {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return &Processor{MinMessages: minMessages, Logf: logf}
}

// Document processes one parsed document in place: every translation
// variant is validated and repaired or cleared, unfinished messages are
// pruned, locations stripped. keep reports whether the document survived
// the minimum-message threshold; a false return means the caller must not
// ship it. The only error is a fatal source-data defect (see
// specifier.Check), which aborts the run.
func (p *Processor) Document(name string, doc *tsfile.Document) (keep bool, err error) {
	for _, ctx := range doc.Contexts {
		for _, m := range ctx.Messages {
			if err := p.message(name, m); err != nil {
				return false, err
			}
		}
	}

	doc.PruneUnfinished()
	doc.StripLocations()

	if n := doc.MessageCount(); n < p.MinMessages {
		p.Result.Removed++
		p.Logf("Removing %s, as it contains only %d messages", name, n)
		return false, nil
	}
	return true, nil
}

// message validates all translation variants of one message, repairing or
// clearing invalid ones.
func (p *Processor) message(name string, m *tsfile.Message) error {
	numerus := m.IsNumerus()

	for i, text := range m.Variants() {
		if text == "" {
			continue
		}

		valid, findings, err := specifier.Check(m.Source, text, numerus)
		if err != nil {
			return err
		}

		// The content policy is independent of specifier correctness: an
		// injected payment address is invalid even with matching profiles.
		policyHit := ContainsPaymentAddress(text)
		if policyHit {
			findings = append(findings, fmt.Sprintf("Translation '%s' contains a payment address. This will be removed.", text))
		}

		for _, f := range findings {
			p.Logf("%s: %s", name, f)
		}

		if valid && !policyHit {
			continue
		}

		if policyHit {
			m.Translation.Clear()
			p.Result.HadErrors = true
			break
		}

		fixed, ok := specifier.Repair(m.Source, text)
		if !ok {
			p.Logf("%s: translation could not be fixed", name)
			m.Translation.Clear()
			p.Result.HadErrors = true
			break
		}

		if numerus {
			m.Translation.NumerusForms[i] = fixed
		} else {
			m.Translation.Text = fixed
		}
		p.Result.Fixed++
		p.Logf("%s: translation #%d fixed: %s", name, p.Result.Fixed, fixed)
	}
	return nil
}

// File processes the document at inPath and writes the result to outPath.
// Documents below the message threshold are not written; keep reports
// whether outPath now exists.
func (p *Processor) File(inPath, outPath string) (keep bool, err error) {
	doc, err := tsfile.ParseFile(inPath)
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", inPath, err)
	}

	keep, err = p.Document(filepath.Base(outPath), doc)
	if err != nil || !keep {
		return keep, err
	}

	if err := doc.WriteFile(outPath); err != nil {
		return false, fmt.Errorf("writing %s: %w", outPath, err)
	}
	return true, nil
}
