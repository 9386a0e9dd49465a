package view

import (
	"time"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/jpalmerr/svworldz/internal/contact"
)

// ContactData is the state of the contact page.
type ContactData struct {
	// Form holds the values to pre-fill.
	Form contact.Form

	// Errors maps field names to messages from a failed submission.
	Errors contact.FieldErrors

	// Notice is a one-off message, e.g. after a successful send.
	Notice string

	// Alert is a page-level error, e.g. a delivery failure.
	Alert string

	// CSRFFieldName and CSRFToken are rendered as a hidden input when set.
	CSRFFieldName string
	CSRFToken     string
}

// Contact renders the contact page.
func Contact(p Page, d ContactData) g.Node {
	return layout(p, "Contact", "Get in touch with us for inquiries, collaborations, or feedback",
		navBar(p, siteNav),
		pageHeader("Contact", brandName, "Get in touch with us for inquiries, collaborations, or feedback"),
		Main(
			Class("container page narrow"),
			g.If(d.Notice != "", Div(Class("notice"), Role("status"), g.Text(d.Notice))),
			g.If(d.Alert != "", Div(Class("alert"), Role("alert"), g.Text(d.Alert))),
			Div(
				animate(riseShortKeyframes, entrance(0)),
				contactForm(d),
			),
			Div(
				Class("connect"),
				animate(riseShortKeyframes, entrance(200*time.Millisecond)),
				H2(g.Text("Connect with Us")),
				Div(
					Class("chips"),
					g.Map(socialLinks, func(l SocialLink) g.Node {
						return A(Class("chip"), Href(l.Href), Target("_blank"), Rel("noopener"), g.Text(l.Label))
					}),
				),
			),
		),
		siteFooter(true),
	)
}

func contactForm(d ContactData) g.Node {
	f := d.Form
	return Form(
		ID("contact-form"),
		Class("contact-form"),
		Method("post"),
		Action("/contact"),
		g.If(d.CSRFToken != "", Input(Type("hidden"), Name(d.CSRFFieldName), Value(d.CSRFToken))),
		Div(
			Class("two-col"),
			textField(d, contact.FieldName, "Name", "text", "Your Name", f.Name, true),
			textField(d, contact.FieldEmail, "Email", "email", "your@email.com", f.Email, true),
		),
		FieldSet(
			Class("field"),
			Legend(g.Text("Contact Type")),
			Div(
				Class("radio-group"),
				radio(contact.Personal, "Personal", f.Type),
				radio(contact.Business, "Business", f.Type),
			),
			fieldError(d.Errors, contact.FieldType),
		),
		Div(
			ID("organization-field"),
			g.If(!f.ShowOrganization(), g.Attr("hidden")),
			textField(d, contact.FieldOrganization, "Organization Name", "text", "Your Organization", f.Organization, false),
		),
		textField(d, contact.FieldSubject, "Subject", "text", "Subject of your message", f.Subject, true),
		Div(
			Class("field"),
			Label(For(contact.FieldMessage), g.Text("Message")),
			Textarea(
				ID(contact.FieldMessage),
				Name(contact.FieldMessage),
				Placeholder("Your Message"),
				Rows("6"),
				Required(),
				g.Text(f.Message),
			),
			fieldError(d.Errors, contact.FieldMessage),
		),
		Button(Type("submit"), Class("button button--dark button--block"), g.Text("Send Message")),
	)
}

func textField(d ContactData, name, label, typ, placeholder, value string, required bool) g.Node {
	return Div(
		Class("field"),
		Label(For(name), g.Text(label)),
		Input(
			Type(typ),
			ID(name),
			Name(name),
			Placeholder(placeholder),
			Value(value),
			g.If(required, Required()),
		),
		fieldError(d.Errors, name),
	)
}

func radio(t contact.Type, label string, selected contact.Type) g.Node {
	id := string(t)
	return Div(
		Class("radio"),
		Input(
			Type("radio"),
			ID(id),
			Name(contact.FieldType),
			Value(id),
			g.If(t == selected, Checked()),
		),
		Label(For(id), g.Text(label)),
	)
}

func fieldError(errs contact.FieldErrors, name string) g.Node {
	msg, ok := errs[name]
	if !ok {
		return nil
	}
	return P(Class("field__error"), g.Text(msg))
}
