package dialog

import (
	"fmt"

	"github.com/petrolito-ai/advisor/internal/advisor/forecast"
	"github.com/petrolito-ai/advisor/internal/advisor/model"
	logx "github.com/petrolito-ai/advisor/pkg/logger"
)

func (e *Engine) attachment(kind model.AttachmentKind, state *model.ConversationState) model.Attachment {
	params := state.LearnedParameters
	switch kind {
	case model.AttachProjection:
		return e.projectionTable(params)
	case model.AttachForecast:
		return e.forecastChart(params)
	case model.AttachSimulation:
		return e.simulationChart(params)
	case model.AttachSavings:
		return e.savingsTable()
	default:
		return model.NoAttachment{}
	}
}

func (e *Engine) projectionTable(params map[model.ParamName]float64) model.TableAttachment {
	t := model.TableAttachment{
		Title:   "Learned parameters",
		Columns: []string{"Parameter", "Value", "Default", "Unit"},
	}
	for _, p := range e.kb.params {
		t.Rows = append(t.Rows, []string{p.Label, num(params[p.Name]), num(p.Default), p.Unit})
	}
	proj := e.forecaster.Project(params)
	t.Rows = append(t.Rows, []string{"projected cash flow", num(proj.CashFlow), num(forecast.BaseCashFlow), "M USD/day"})
	return t
}

func (e *Engine) forecastChart(params map[model.ParamName]float64) model.Attachment {
	res, err := e.forecaster.Forecast(params)
	if err != nil {
		logx.Warn().Str("component", "dialog").Err(err).Msg("forecast unavailable")
		return model.NoAttachment{}
	}

	history := model.Series{Name: "cash flow (M USD)"}
	price := model.Series{Name: "crude (USD/bbl)"}
	for _, o := range res.History {
		label := fmt.Sprintf("D%d", o.Day+1)
		history.Points = append(history.Points, model.Point{X: float64(o.Day), Label: label, Y: o.CashFlow})
		price.Points = append(price.Points, model.Point{X: float64(o.Day), Label: label, Y: o.Price})
	}
	next := len(res.History)
	prediction := model.Series{
		Name:   "prediction",
		Points: []model.Point{{X: float64(next), Label: fmt.Sprintf("D%d", next+1), Y: res.Prediction}},
	}

	return model.ChartAttachment{
		Title:  fmt.Sprintf("Cash flow vs crude, next day %s M USD (%s)", num(res.Prediction), res.Risk),
		XLabel: "day",
		YLabel: "M USD",
		Series: []model.Series{history, price, prediction},
	}
}

func (e *Engine) simulationChart(params map[model.ParamName]float64) model.ChartAttachment {
	bands := e.forecaster.Simulate(params)
	p10 := model.Series{Name: "P10"}
	p50 := model.Series{Name: "P50"}
	p90 := model.Series{Name: "P90"}
	for _, b := range bands {
		label := fmt.Sprintf("D%d", b.Day)
		p10.Points = append(p10.Points, model.Point{X: float64(b.Day), Label: label, Y: b.P10})
		p50.Points = append(p50.Points, model.Point{X: float64(b.Day), Label: label, Y: b.P50})
		p90.Points = append(p90.Points, model.Point{X: float64(b.Day), Label: label, Y: b.P90})
	}
	cfg := e.forecaster.Config()
	return model.ChartAttachment{
		Title:  fmt.Sprintf("Monte Carlo cash flow, %d paths over %d days", cfg.Paths, cfg.HorizonDays),
		XLabel: "day",
		YLabel: "M USD",
		Series: []model.Series{p10, p50, p90},
	}
}

func (e *Engine) savingsTable() model.TableAttachment {
	rows, annual := e.forecaster.Savings()
	t := model.TableAttachment{
		Title:   fmt.Sprintf("Cumulative monitoring cost, annual saving %s M USD", num(annual)),
		Columns: []string{"Month", "Manual", "Assisted", "Saving"},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{r.Month, num(r.Manual), num(r.Assisted), num(r.Manual - r.Assisted)})
	}
	return t
}
