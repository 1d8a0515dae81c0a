package v1handler

import (
	"io"
	"net/http"
	"strconv"
	"targets/internal/distributor"
	"targets/internal/report"
	"targets/pkg/calendar"
	"targets/pkg/controller"
	"targets/pkg/domain"
	"targets/pkg/serrors"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// DistributionRequest is the decoded body of POST /v1/distributions.
type DistributionRequest struct {
	Start  string
	End    string
	Target *float64
	// Excluded is nil when the field was omitted and empty when it was sent as [].
	Excluded []string
	Mode     string
}

// DecodeDistributionRequest reads a DistributionRequest from d. Weekdays may
// be given as numbers (0 = Sunday) or names. Unknown fields are skipped.
func DecodeDistributionRequest(d *jx.Decoder) (DistributionRequest, error) {
	var req DistributionRequest
	err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		switch string(key) {
		case "start":
			v, err := d.Str()
			if err != nil {
				return errors.Wrap(err, "decode start")
			}
			req.Start = v
		case "end":
			v, err := d.Str()
			if err != nil {
				return errors.Wrap(err, "decode end")
			}
			req.End = v
		case "target":
			v, err := d.Float64()
			if err != nil {
				return errors.Wrap(err, "decode target")
			}
			req.Target = &v
		case "excludedWeekdays":
			req.Excluded = []string{}
			if err := d.Arr(func(d *jx.Decoder) error {
				switch tt := d.Next(); tt {
				case jx.Number:
					n, err := d.Int()
					if err != nil {
						return errors.Wrap(err, "decode weekday number")
					}
					req.Excluded = append(req.Excluded, strconv.Itoa(n))
				case jx.String:
					s, err := d.Str()
					if err != nil {
						return errors.Wrap(err, "decode weekday name")
					}
					req.Excluded = append(req.Excluded, s)
				default:
					return errors.Errorf("unexpected %s in excludedWeekdays", tt)
				}

				return nil
			}); err != nil {
				return errors.Wrap(err, "decode excludedWeekdays")
			}
		case "mode":
			v, err := d.Str()
			if err != nil {
				return errors.Wrap(err, "decode mode")
			}
			req.Mode = v
		default:
			return d.Skip()
		}

		return nil
	})
	if err != nil {
		return DistributionRequest{}, errors.Wrap(err, "decode distribution request")
	}

	return req, nil
}

// toDistributorRequest validates the decoded body and converts it to a distributor.Request.
func (h *Handler) toDistributorRequest(in DistributionRequest) (distributor.Request, error) {
	if in.Start == "" || in.End == "" {
		return distributor.Request{}, serrors.With(serrors.ErrBadRequest, "start and end are required")
	}
	if in.Target == nil {
		return distributor.Request{}, serrors.With(serrors.ErrBadRequest, "target is required")
	}

	r, err := calendar.ParseRange(in.Start, in.End)
	if err != nil {
		return distributor.Request{}, err
	}

	excluded := h.deps.DefaultExcluded
	if in.Excluded != nil {
		if excluded, err = calendar.ParseExclusions(in.Excluded...); err != nil {
			return distributor.Request{}, err
		}
	}

	var mode domain.Mode
	if in.Mode != "" {
		if mode, err = domain.ParseMode(in.Mode); err != nil {
			return distributor.Request{}, err
		}
	}

	return distributor.Request{
		Range:    r,
		Target:   *in.Target,
		Excluded: excluded,
		Mode:     mode,
	}, nil
}

// Distribute handles POST /v1/distributions.
func (h *Handler) Distribute(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		controller.WriteError(ctx, w, serrors.Wrap(serrors.ErrBadRequest, err, "could not read body"))

		return
	}

	in, err := DecodeDistributionRequest(jx.DecodeBytes(body))
	if err != nil {
		controller.WriteError(ctx, w, serrors.Wrap(serrors.ErrBadRequest, err, "invalid JSON body"))

		return
	}

	req, err := h.toDistributorRequest(in)
	if err != nil {
		controller.WriteError(ctx, w, err)

		return
	}

	res, err := h.deps.Distributor.Distribute(ctx, req)
	if err != nil {
		controller.WriteError(ctx, w, err)

		return
	}

	controller.WriteJSON(w, http.StatusOK, report.MarshalJSON(res))
}
