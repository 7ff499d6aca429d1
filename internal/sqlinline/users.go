package sqlinline

const QInsertUser = `--sql 959b4fd4-1682-4353-971f-70ca734839f6
insert into users (username, email, password_hash, first_name, last_name, is_staff, date_of_birth, profile_photo, date_joined)
values ($1::text, $2::text, $3::text, $4::text, $5::text, $6::bool, $7::date, $8::text, $9::timestamptz)
returning id;
`

const QSelectUserByID = `--sql 746d04e0-a46c-4677-902f-4358976d7b4f
select id, username, email, password_hash, first_name, last_name, is_staff, date_of_birth, profile_photo, date_joined
from users
where id = $1::bigint
  and (not $2::bool or id = $3::bigint)
limit 1;
`

const QSelectUserByUsername = `--sql ceccf2c5-aeb7-4161-a360-749f96c1df8e
select id, username, email, password_hash, first_name, last_name, is_staff, date_of_birth, profile_photo, date_joined
from users
where username = $1::text
limit 1;
`

const QListUsers = `--sql 4789ac20-0c7d-42c1-9f83-38dbfd760d26
select id, username, email, password_hash, first_name, last_name, is_staff, date_of_birth, profile_photo, date_joined
from users
where (not $1::bool or id = $2::bigint)
  and ($3::text = '' or username ilike '%' || $3::text || '%' or email ilike '%' || $3::text || '%')
order by id;
`

const QUpdateUser = `--sql 92e6350a-c106-4446-82d4-3f43b2c91201
update users
set username = $2::text,
    email = $3::text,
    password_hash = $4::text,
    first_name = $5::text,
    last_name = $6::text,
    is_staff = $7::bool,
    date_of_birth = $8::date
where id = $1::bigint;
`

const QDeleteUser = `--sql e2d30c53-a17e-4a1a-8e74-fa5e4dba2264
delete from users where id = $1::bigint;
`

const QSetUserStaff = `--sql 03d3c582-f94e-4c9a-aa7c-a2e9f3d50322
update users set is_staff = $2::bool where username = $1::text;
`

const QSetUserPhoto = `--sql 31fcfc17-cc44-4e46-9cc5-6048083ae3e1
update users set profile_photo = $2::text where id = $1::bigint;
`
