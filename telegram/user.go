package telegram

import tgskema "github.com/reoring/tgskema"

// User is a Telegram user or bot.
type User struct{ tgskema.Object }

func newUser() tgskema.Model { return new(User) }

var userSchema = tgskema.NewSchema("User").
	Field("id").Requires(tgskema.Integer()).Scalar(tgskema.KindInteger).
	Field("is_bot").Accepts(tgskema.Boolean()).Scalar(tgskema.KindBoolean).
	Field("first_name").Requires(tgskema.String()).Scalar(tgskema.KindString).
	Field("last_name").Accepts(tgskema.String()).Scalar(tgskema.KindString).
	Field("username").Accepts(tgskema.String()).Scalar(tgskema.KindString).
	Field("language_code").Accepts(tgskema.String()).Scalar(tgskema.KindString).
	MustBuild()

func (*User) Schema() *tgskema.Schema { return userSchema }

func (u *User) ID() int64            { return num(u, "id") }
func (u *User) IsBot() bool          { return flag(u, "is_bot") }
func (u *User) FirstName() string    { return str(u, "first_name") }
func (u *User) LastName() string     { return str(u, "last_name") }
func (u *User) Username() string     { return str(u, "username") }
func (u *User) LanguageCode() string { return str(u, "language_code") }

func (u *User) SetID(id int64) *User           { u.Set("id", id); return u }
func (u *User) SetIsBot(v bool) *User          { u.Set("is_bot", v); return u }
func (u *User) SetFirstName(v string) *User    { u.Set("first_name", v); return u }
func (u *User) SetLastName(v string) *User     { u.Set("last_name", v); return u }
func (u *User) SetUsername(v string) *User     { u.Set("username", v); return u }
func (u *User) SetLanguageCode(v string) *User { u.Set("language_code", v); return u }

// Chat is a private chat, group, supergroup or channel.
type Chat struct{ tgskema.Object }

func newChat() tgskema.Model { return new(Chat) }

var chatSchema = tgskema.NewSchema("Chat").
	Field("id").Requires(tgskema.Integer()).Scalar(tgskema.KindInteger).
	Field("type").Requires(tgskema.String()).Scalar(tgskema.KindString).
	Field("title").Accepts(tgskema.String()).Scalar(tgskema.KindString).
	Field("username").Accepts(tgskema.String()).Scalar(tgskema.KindString).
	Field("first_name").Accepts(tgskema.String()).Scalar(tgskema.KindString).
	Field("last_name").Accepts(tgskema.String()).Scalar(tgskema.KindString).
	MustBuild()

func (*Chat) Schema() *tgskema.Schema { return chatSchema }

func (c *Chat) ID() int64         { return num(c, "id") }
func (c *Chat) Type() string      { return str(c, "type") }
func (c *Chat) Title() string     { return str(c, "title") }
func (c *Chat) Username() string  { return str(c, "username") }
func (c *Chat) FirstName() string { return str(c, "first_name") }
func (c *Chat) LastName() string  { return str(c, "last_name") }

func (c *Chat) SetID(id int64) *Chat       { c.Set("id", id); return c }
func (c *Chat) SetType(v string) *Chat     { c.Set("type", v); return c }
func (c *Chat) SetTitle(v string) *Chat    { c.Set("title", v); return c }
func (c *Chat) SetUsername(v string) *Chat { c.Set("username", v); return c }

// Location is a point on the map.
type Location struct{ tgskema.Object }

func newLocation() tgskema.Model { return new(Location) }

var locationSchema = tgskema.NewSchema("Location").
	Field("longitude").Requires(tgskema.Float()).Scalar(tgskema.KindFloat).
	Field("latitude").Requires(tgskema.Float()).Scalar(tgskema.KindFloat).
	MustBuild()

func (*Location) Schema() *tgskema.Schema { return locationSchema }

func (l *Location) Longitude() float64 { return float(l, "longitude") }
func (l *Location) Latitude() float64  { return float(l, "latitude") }

func (l *Location) SetLongitude(v float64) *Location { l.Set("longitude", v); return l }
func (l *Location) SetLatitude(v float64) *Location  { l.Set("latitude", v); return l }
