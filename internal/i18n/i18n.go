// Package i18n localizes the titles of built-in step actions.
package i18n

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys of the built-in actions.
const (
	FillField            = "pagefactory.fill.field"
	ClickLink            = "pagefactory.click.link"
	ClickButton          = "pagefactory.click.button"
	SelectCheckBox       = "pagefactory.select.checkBox"
	CheckValue           = "pagefactory.check.value"
	CheckFieldNotEmpty   = "pagefactory.check.field.not.empty"
	CheckValuesNotEqual  = "pagefactory.check.values.not.equal"
	CheckElementWithText = "pagefactory.check.element.with.text.present"
	CheckTextVisible     = "pagefactory.check.text.visible"
	TextAppearsOnPage    = "pagefactory.text.appears.on.page"
	TextAbsentOnPage     = "pagefactory.text.absent.on.page"
)

var messages = map[string]map[language.Tag]string{
	FillField:            {language.English: "fill the field", language.Russian: "заполняет поле"},
	ClickLink:            {language.English: "click the link", language.Russian: "нажимает на ссылку"},
	ClickButton:          {language.English: "click the button", language.Russian: "нажимает кнопку"},
	SelectCheckBox:       {language.English: "select the checkbox", language.Russian: "выбирает чекбокс"},
	CheckValue:           {language.English: "check the value", language.Russian: "проверяет значение"},
	CheckFieldNotEmpty:   {language.English: "check the field is not empty", language.Russian: "проверяет что поле непустое"},
	CheckValuesNotEqual:  {language.English: "check the values are not equal", language.Russian: "проверяет несовпадение значений"},
	CheckElementWithText: {language.English: "check the element with text is present", language.Russian: "проверяет наличие элемента с текстом"},
	CheckTextVisible:     {language.English: "check the text is visible", language.Russian: "проверяет отображение текста"},
	TextAppearsOnPage:    {language.English: "check the text appears on the page", language.Russian: "проверяет появление текста на странице"},
	TextAbsentOnPage:     {language.English: "check the text is absent on the page", language.Russian: "проверяет отсутствие текста на странице"},
}

var supported = []language.Tag{language.English, language.Russian}

var matcher = language.NewMatcher(supported)

var builtins = func() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, byLang := range messages {
		for tag, msg := range byLang {
			if err := b.SetString(tag, key, msg); err != nil {
				panic(fmt.Sprintf("i18n: %s/%s: %v", tag, key, err))
			}
		}
	}
	return b
}()

// Translator resolves message keys into labels of one language.
type Translator struct {
	tag     language.Tag
	printer *message.Printer
}

// New returns a translator for lang (a BCP 47 tag such as "en" or "ru-RU").
// Unsupported languages fall back to English.
func New(lang string) (*Translator, error) {
	requested, err := language.Parse(lang)
	if err != nil {
		return nil, fmt.Errorf("parse language %q: %w", lang, err)
	}

	_, index, _ := matcher.Match(requested)
	tag := supported[index]

	return &Translator{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(builtins)),
	}, nil
}

func (t *Translator) Language() language.Tag { return t.tag }

// Translate returns the label for key. Strings that are not known keys,
// such as titles declared by page models, are returned unchanged.
func (t *Translator) Translate(key string) string {
	if _, ok := messages[key]; !ok {
		return key
	}
	return t.printer.Sprintf(key)
}

// Keys lists every built-in message key.
func Keys() []string {
	keys := make([]string, 0, len(messages))
	for key := range messages {
		keys = append(keys, key)
	}
	return keys
}
