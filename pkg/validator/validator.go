package validator

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	zhTranslations "github.com/go-playground/validator/v10/translations/zh"
)

var (
	once  sync.Once
	trans ut.Translator
)

// LazyInitGinValidator 给gin内置的校验器挂上本地化翻译
// language 取配置里的 language 字段，目前支持 zh / en
func LazyInitGinValidator(language string) {
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		zhL := zh.New()
		enL := en.New()
		uni := ut.New(enL, zhL, enL)
		switch language {
		case "zh":
			trans, _ = uni.GetTranslator("zh")
			_ = zhTranslations.RegisterDefaultTranslations(v, trans)
		default:
			trans, _ = uni.GetTranslator("en")
			_ = enTranslations.RegisterDefaultTranslations(v, trans)
		}
	})
}

// Translate 把绑定校验错误翻译成配置语言，非校验错误原样返回
func Translate(err error) string {
	if err == nil {
		return ""
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || trans == nil {
		return err.Error()
	}
	var msg string
	for _, fe := range verrs {
		if msg != "" {
			msg += "; "
		}
		msg += fe.Translate(trans)
	}
	return msg
}
