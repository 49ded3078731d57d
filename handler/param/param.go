package param

import (
	"encoding/json"
	"net/http"
	"reflect"

	"github.com/asaskevich/govalidator"
	"github.com/gofrs/uuid"
	"github.com/gorilla/schema"
	"github.com/shopspring/decimal"
	"github.com/twitchtv/twirp"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
	decoder.SetAliasTag("json")
	decoder.RegisterConverter(decimal.Decimal{}, func(s string) reflect.Value {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return reflect.Value{}
		}
		return reflect.ValueOf(d)
	})

	govalidator.TagMap["uuid"] = func(s string) bool {
		_, err := uuid.FromString(s)
		return err == nil
	}
}

// Binding decode query (GET) or json body (others) into v and validate it
func Binding(r *http.Request, v interface{}) error {
	if r.Method == http.MethodGet {
		if err := decoder.Decode(v, r.URL.Query()); err != nil {
			return twirp.InvalidArgumentError("query", err.Error())
		}
	} else if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return twirp.InvalidArgumentError("body", err.Error())
	}

	if _, err := govalidator.ValidateStruct(v); err != nil {
		return twirp.InvalidArgumentError("params", err.Error())
	}

	return nil
}
