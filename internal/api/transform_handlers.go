package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/banshee-data/groundcontrol/internal/transform"
	"github.com/banshee-data/groundcontrol/internal/units"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// estimateRequest carries the estimation inputs. Rotation is a string so the
// field DMS forms ("-1 3 45.72") work the same here as on the CLI.
type estimateRequest struct {
	Links    []transform.Link `json:"links"`
	Weights  []float64        `json:"weights,omitempty"`
	Rotation *string          `json:"rotation,omitempty"`
	Scale    *float64         `json:"scale,omitempty"`
}

type estimateResponse struct {
	Params          transform.Params      `json:"params"`
	Scale           float64               `json:"scale"`
	RotationDegrees float64               `json:"rotation_degrees"`
	LinkErrors      []transform.LinkError `json:"link_errors"`
	RMS             float64               `json:"rms"`
}

func (s *Server) estimateTransform(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req estimateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSONError(w, http.StatusBadRequest, "bad request body: "+err.Error())
		return
	}

	fitOpts, err := fitOptions(req)
	if err != nil {
		s.writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	params, err := transform.FitLinks(req.Links, fitOpts)
	if err != nil {
		s.writeJSONError(w, estimateStatus(err), err.Error())
		return
	}

	linkErrs, rms := transform.LinkErrors(params, req.Links)
	s.writeJSON(w, estimateResponse{
		Params:          params,
		Scale:           params.Scale(),
		RotationDegrees: units.RadiansToDegrees(params.Rotation()),
		LinkErrors:      linkErrs,
		RMS:             rms,
	})
}

func fitOptions(req estimateRequest) (transform.FitOptions, error) {
	var opts transform.FitOptions
	opts.Weights = req.Weights
	opts.Scale = req.Scale
	if req.Rotation != nil {
		deg, err := units.ParseRotation(*req.Rotation)
		if err != nil {
			return opts, err
		}
		rad := units.DegreesToRadians(deg)
		opts.Rotation = &rad
	}
	return opts, nil
}

func estimateStatus(err error) int {
	var invalid *transform.InvalidParameterError
	var mirrored *transform.MirroredTransformError
	if errors.As(err, &invalid) || errors.As(err, &mirrored) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

type applyRequest struct {
	Params    transform.Params  `json:"params"`
	Direction string            `json:"direction"`
	Points    []transform.Point `json:"points"`
}

func (s *Server) applyTransform(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req applyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSONError(w, http.StatusBadRequest, "bad request body: "+err.Error())
		return
	}

	dir, err := transform.ParseDirection(req.Direction)
	if err != nil {
		s.writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	out := make([]transform.Point, len(req.Points))
	for i, pt := range req.Points {
		mapped, err := req.Params.Apply(pt, dir)
		if err != nil {
			var degen *transform.DegenerateTransformError
			if errors.As(err, &degen) {
				s.writeJSONError(w, http.StatusUnprocessableEntity, err.Error())
				return
			}
			s.writeJSONError(w, http.StatusInternalServerError, err.Error())
			return
		}
		out[i] = mapped
	}

	s.writeJSON(w, map[string][]transform.Point{"points": out})
}

// residualReport renders a quick scatter plot (HTML) of the fit residuals
// using go-echarts, one point per link showing the residual vector
// components in target units.
func (s *Server) residualReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req estimateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSONError(w, http.StatusBadRequest, "bad request body: "+err.Error())
		return
	}

	fitOpts, err := fitOptions(req)
	if err != nil {
		s.writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	params, err := transform.FitLinks(req.Links, fitOpts)
	if err != nil {
		s.writeJSONError(w, estimateStatus(err), err.Error())
		return
	}
	_, rms := transform.LinkErrors(params, req.Links)

	data := make([]opts.ScatterData, 0, len(req.Links))
	for _, l := range req.Links {
		fitted := params.Forward(l.Local)
		data = append(data, opts.ScatterData{
			Name:  l.Name,
			Value: []interface{}{fitted.X - l.Target.X, fitted.Y - l.Target.Y},
		})
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Fit residuals",
			Subtitle: fmt.Sprintf("%d links, RMS %.4f, scale %.8f", len(req.Links), rms, params.Scale()),
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "east residual", Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "north residual", Type: "value"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	scatter.AddSeries("residuals", data)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := scatter.Render(w); err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, "render chart: "+err.Error())
	}
}
