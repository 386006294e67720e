package web

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/csemotors/inventory/internal/model"
)

var (
	alphanumeric      = regexp.MustCompile(`^[A-Za-z0-9]+$`)
	alphanumericSpace = regexp.MustCompile(`^[A-Za-z0-9 ]+$`)
)

// validClassificationName reports whether a classification name passes
// validation: non-empty, alphanumeric only.
func validClassificationName(name string) bool {
	return alphanumeric.MatchString(name)
}

// vehicleForm holds the raw submitted vehicle fields so a failed submission
// can re-render the form with the entered values preserved.
type vehicleForm struct {
	InvID            string
	Make             string
	Model            string
	Year             string
	Description      string
	Image            string
	Thumbnail        string
	Price            string
	Miles            string
	Color            string
	ClassificationID string
}

func readVehicleForm(r *http.Request) vehicleForm {
	return vehicleForm{
		InvID:            r.FormValue("inv_id"),
		Make:             strings.TrimSpace(r.FormValue("inv_make")),
		Model:            strings.TrimSpace(r.FormValue("inv_model")),
		Year:             strings.TrimSpace(r.FormValue("inv_year")),
		Description:      strings.TrimSpace(r.FormValue("inv_description")),
		Image:            strings.TrimSpace(r.FormValue("inv_image")),
		Thumbnail:        strings.TrimSpace(r.FormValue("inv_thumbnail")),
		Price:            strings.TrimSpace(r.FormValue("inv_price")),
		Miles:            strings.TrimSpace(r.FormValue("inv_miles")),
		Color:            strings.TrimSpace(r.FormValue("inv_color")),
		ClassificationID: r.FormValue("classification_id"),
	}
}

// validate checks every field and returns the parsed input alongside
// field-level error messages. The input is only meaningful when the message
// list is empty.
func (f vehicleForm) validate() (model.VehicleInput, []string) {
	var errs []string

	if !alphanumericSpace.MatchString(f.Make) {
		errs = append(errs, "A valid make is required.")
	}
	if !alphanumericSpace.MatchString(f.Model) {
		errs = append(errs, "A valid model is required.")
	}

	year, err := strconv.Atoi(f.Year)
	if err != nil || year < 1800 || year > 2100 {
		errs = append(errs, "A valid year is required.")
	}

	if f.Description == "" {
		errs = append(errs, "A valid description is required.")
	}

	price, err := strconv.ParseFloat(f.Price, 64)
	if err != nil || price < 0 {
		errs = append(errs, "A valid price is required.")
	}

	miles, err := strconv.ParseInt(f.Miles, 10, 64)
	if err != nil || miles < 0 {
		errs = append(errs, "Valid mileage is required.")
	}

	if !alphanumericSpace.MatchString(f.Color) {
		errs = append(errs, "A valid color is required.")
	}

	classificationID, err := strconv.ParseInt(f.ClassificationID, 10, 64)
	if err != nil || classificationID <= 0 {
		errs = append(errs, "Please select a classification.")
	}

	image := f.Image
	if image == "" {
		image = "/images/vehicles/no-image.png"
	}
	thumbnail := f.Thumbnail
	if thumbnail == "" {
		thumbnail = "/images/vehicles/no-image-tn.png"
	}

	return model.VehicleInput{
		Make:             f.Make,
		Model:            f.Model,
		Year:             year,
		Description:      f.Description,
		Image:            image,
		Thumbnail:        thumbnail,
		Price:            price,
		Miles:            miles,
		Color:            f.Color,
		ClassificationID: classificationID,
	}, errs
}

// formFromVehicle pre-populates a vehicle form from a stored vehicle, for the
// edit and delete-confirm pages.
func formFromVehicle(v *model.Vehicle) vehicleForm {
	return vehicleForm{
		InvID:            strconv.FormatInt(v.ID, 10),
		Make:             v.Make,
		Model:            v.Model,
		Year:             strconv.Itoa(v.Year),
		Description:      v.Description,
		Image:            v.Image,
		Thumbnail:        v.Thumbnail,
		Price:            strconv.FormatFloat(v.Price, 'f', -1, 64),
		Miles:            strconv.FormatInt(v.Miles, 10),
		Color:            v.Color,
		ClassificationID: strconv.FormatInt(v.ClassificationID, 10),
	}
}
