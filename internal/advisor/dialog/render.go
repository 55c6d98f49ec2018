package dialog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/petrolito-ai/advisor/internal/advisor/model"
)

func (e *Engine) render(tr Transition, state *model.ConversationState) model.Response {
	rep := e.replacer(state, tr)

	switch tr.Kind {
	case model.ResponseEntry:
		entry := e.kb.Entry(tr.Topic, tr.Depth)
		footer := e.kb.footerMore
		if tr.Depth >= model.MaxDepth {
			footer = e.kb.footerMax
		}
		return model.Response{
			Kind:           model.ResponseEntry,
			Topic:          tr.Topic,
			Depth:          tr.Depth,
			Title:          rep.Replace(entry.Title),
			Body:           rep.Replace(entry.Body),
			KeyFact:        rep.Replace(entry.KeyFact),
			GuidanceFooter: rep.Replace(footer),
			Attachment:     e.attachment(entry.Attachment, state),
		}

	case model.ResponseFallback:
		return e.fromTemplate(model.ResponseFallback, e.kb.fallback, tr, rep)

	default:
		return e.fromTemplate(model.ResponseClarification, e.kb.clarification, tr, rep)
	}
}

func (e *Engine) fromTemplate(kind model.ResponseKind, t Template, tr Transition, rep *strings.Replacer) model.Response {
	return model.Response{
		Kind:           kind,
		Topic:          tr.Topic,
		Depth:          tr.Depth,
		Title:          rep.Replace(t.Title),
		Body:           rep.Replace(t.Body),
		KeyFact:        rep.Replace(t.KeyFact),
		GuidanceFooter: rep.Replace(t.Footer),
		Attachment:     model.NoAttachment{},
	}
}

// replacer resolves {token} placeholders. Figures are recomputed from the
// learned parameters on every call.
func (e *Engine) replacer(state *model.ConversationState, tr Transition) *strings.Replacer {
	proj := e.forecaster.Project(state.LearnedParameters)
	return strings.NewReplacer(
		"{topic}", e.kb.Label(tr.Topic),
		"{topics}", strings.Join(e.kb.Labels(), ", "),
		"{level}", strconv.Itoa(tr.Depth+1),
		"{next_level}", strconv.Itoa(min(tr.Depth+2, model.MaxDepth+1)),
		"{commodity_price}", num(state.Param(model.ParamCommodityPrice)),
		"{output_rate}", num(state.Param(model.ParamOutputRate)),
		"{debt_service}", num(state.Param(model.ParamDebtService)),
		"{projected_cash_flow}", num(proj.CashFlow),
		"{risk_status}", string(proj.Risk),
	)
}

func (e *Engine) describeUpdates(updates []model.ParameterUpdate, state *model.ConversationState) string {
	specs := make(map[model.ParamName]ParameterSpec, len(e.kb.params))
	for _, p := range e.kb.params {
		specs[p.Name] = p
	}

	parts := make([]string, 0, len(updates))
	for _, u := range updates {
		spec := specs[u.Name]
		parts = append(parts, fmt.Sprintf("%s = %s %s", spec.Label, num(u.Value), spec.Unit))
	}
	proj := e.forecaster.Project(state.LearnedParameters)
	return fmt.Sprintf("Noted: %s. Projected cash flow is now %s M USD/day (%s).",
		strings.Join(parts, ", "), num(proj.CashFlow), proj.Risk)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
