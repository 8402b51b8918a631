package recipe

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	recipeCore "gastroguide/internal/core/recipe"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterValidators 向 gin 的驗證器註冊 recipe_mode 與 recipe_style 標籤；
// 之後的呼叫回傳第一次註冊的結果
func RegisterValidators() error {
	registerOnce.Do(func() {
		registerErr = registerValidators(binding.Validator.Engine())
	})
	return registerErr
}

func registerValidators(engine any) error {
	v, ok := engine.(*validator.Validate)
	if !ok {
		return errors.New("unexpected validator engine")
	}

	v.RegisterTagNameFunc(jsonFieldName)
	if err := v.RegisterValidation("recipe_mode", validateMode); err != nil {
		return err
	}
	return v.RegisterValidation("recipe_style", validateStyle)
}

func validateMode(fl validator.FieldLevel) bool {
	return recipeCore.IsValidMode(fl.Field().String())
}

func validateStyle(fl validator.FieldLevel) bool {
	return recipeCore.IsValidStyle(fl.Field().String())
}

// jsonFieldName 錯誤訊息使用 JSON 欄位名稱
func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

// describeBindError 將綁定錯誤轉為可讀訊息
func describeBindError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "malformed request body"
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "recipe_mode":
			msgs = append(msgs, fmt.Sprintf("%s must be one of the supported modes", fe.Field()))
		case "recipe_style":
			msgs = append(msgs, fmt.Sprintf("%s must be one of the supported styles", fe.Field()))
		case "min", "max":
			msgs = append(msgs, fmt.Sprintf("%s must be between %d and %d", fe.Field(), recipeCore.MinServings, recipeCore.MaxServings))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}
	return strings.Join(msgs, "; ")
}
